package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/imbecis/app-imbecis/internal/messages"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/validation"
	"go.uber.org/zap"
)

// RegionsClient manages notification regions
type RegionsClient struct {
	api *APIClient
}

// NewRegionsClient creates a regions client
func NewRegionsClient(api *APIClient) *RegionsClient {
	return &RegionsClient{api: api}
}

// regions fall back to the unknown error when the backend gives no message
func regionsExpectation(status int) Expectation {
	return Expectation{Status: status, GenericFallback: true}
}

func regionPath(id string) string {
	return "/regions/" + url.PathEscape(id)
}

// decodeRegion turns a successful response into an envelope, falling back
// to the unknown error when the payload is unusable.
func (c *RegionsClient) decodeRegion(resp Response) models.Envelope[*models.NotificationRegion] {
	if !resp.OK() {
		return models.Failed[*models.NotificationRegion](resp.Message, nil)
	}
	region, err := Decode[models.NotificationRegion](resp)
	if err != nil {
		c.api.logger.Warn("invalid region payload", zap.Error(err))
		return models.Failed[*models.NotificationRegion](c.api.Catalog().Get(messages.Unknown), nil)
	}
	return models.Envelope[*models.NotificationRegion]{Success: true, Message: resp.Message, Payload: &region}
}

// Create registers a new region
func (c *RegionsClient) Create(ctx context.Context, input models.RegionInput) models.Envelope[*models.NotificationRegion] {
	if err := validation.ValidateStruct(input); err != nil {
		return models.Failed[*models.NotificationRegion](c.api.invalid("regions.create", err).Message, nil)
	}

	return c.decodeRegion(c.api.do(ctx, request{
		operation: "regions.create",
		method:    http.MethodPost,
		route:     "/regions",
		path:      "/regions",
		body:      input,
		expect:    regionsExpectation(http.StatusCreated),
	}))
}

// Update replaces every field of region
func (c *RegionsClient) Update(ctx context.Context, region models.NotificationRegion) bool {
	if region.ID == "" {
		c.api.invalid("regions.update", models.ErrEmptyRegionID)
		return false
	}
	input := region.Input()
	if err := validation.ValidateStruct(input); err != nil {
		c.api.invalid("regions.update", err)
		return false
	}

	return c.api.do(ctx, request{
		operation: "regions.update",
		method:    http.MethodPut,
		route:     "/regions/{id}",
		path:      regionPath(region.ID),
		body:      input,
		expect:    regionsExpectation(http.StatusOK),
	}).OK()
}

// List returns every region; the payload is empty, never nil, on failure
func (c *RegionsClient) List(ctx context.Context) models.Envelope[[]models.NotificationRegion] {
	resp := c.api.do(ctx, request{
		operation: "regions.list",
		method:    http.MethodGet,
		route:     "/regions",
		path:      "/regions",
		expect:    regionsExpectation(http.StatusOK),
	})
	if !resp.OK() {
		return models.Failed(resp.Message, []models.NotificationRegion{})
	}

	regions, err := Decode[[]models.NotificationRegion](resp)
	if err != nil {
		c.api.logger.Warn("invalid regions payload", zap.Error(err))
		return models.Failed(c.api.Catalog().Get(messages.Unknown), []models.NotificationRegion{})
	}
	if regions == nil {
		regions = []models.NotificationRegion{}
	}
	return models.Envelope[[]models.NotificationRegion]{Success: true, Message: resp.Message, Payload: regions}
}

// Get fetches one region
func (c *RegionsClient) Get(ctx context.Context, id string) models.Envelope[*models.NotificationRegion] {
	if id == "" {
		return models.Failed[*models.NotificationRegion](c.api.invalid("regions.get", models.ErrEmptyRegionID).Message, nil)
	}

	return c.decodeRegion(c.api.do(ctx, request{
		operation: "regions.get",
		method:    http.MethodGet,
		route:     "/regions/{id}",
		path:      regionPath(id),
		expect:    regionsExpectation(http.StatusOK),
	}))
}

// Delete removes a region. Payload mirrors Success.
func (c *RegionsClient) Delete(ctx context.Context, id string) models.Envelope[bool] {
	if id == "" {
		return models.Failed(c.api.invalid("regions.delete", models.ErrEmptyRegionID).Message, false)
	}

	resp := c.api.do(ctx, request{
		operation: "regions.delete",
		method:    http.MethodDelete,
		route:     "/regions/{id}",
		path:      regionPath(id),
		expect:    regionsExpectation(http.StatusOK),
	})
	if !resp.OK() {
		return models.Failed(resp.Message, false)
	}
	return models.Envelope[bool]{Success: true, Message: resp.Message, Payload: true}
}
