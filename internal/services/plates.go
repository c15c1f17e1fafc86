package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/imbecis/app-imbecis/internal/models"
	"go.uber.org/zap"
)

// PlatesClient wraps the read-only /plates endpoints
type PlatesClient struct {
	api *APIClient
}

// NewPlatesClient creates a plates client
func NewPlatesClient(api *APIClient) *PlatesClient {
	return &PlatesClient{api: api}
}

// GetByCountryAndNumber looks a plate up by its natural key, nil when absent
// or on failure.
func (c *PlatesClient) GetByCountryAndNumber(ctx context.Context, country, number string) *models.Plate {
	if country == "" || number == "" {
		c.api.invalid("plates.get", models.ErrInvalidPlate)
		return nil
	}

	resp := c.api.do(ctx, request{
		operation: "plates.get",
		method:    http.MethodGet,
		route:     "/plates/{country}/{number}",
		path:      "/plates/" + url.PathEscape(country) + "/" + url.PathEscape(number),
		expect:    Expectation{Status: http.StatusOK},
	})
	if !resp.OK() {
		return nil
	}

	plate, err := Decode[models.Plate](resp)
	if err != nil {
		c.api.logger.Warn("invalid plate payload", zap.Error(err))
		return nil
	}
	return &plate
}

// GetReportsForPlate returns the reports of a plate. A nil slice means the
// reports could not be fetched; an empty one that there are none.
func (c *PlatesClient) GetReportsForPlate(ctx context.Context, plateID string) []models.Report {
	if plateID == "" {
		c.api.invalid("plates.reports", models.ErrEmptyPlateID)
		return nil
	}

	resp := c.api.do(ctx, request{
		operation: "plates.reports",
		method:    http.MethodGet,
		route:     "/plates/{id}/reports",
		path:      "/plates/" + url.PathEscape(plateID) + "/reports",
		expect:    Expectation{Status: http.StatusOK},
	})
	if !resp.OK() {
		return nil
	}

	reports, err := Decode[[]models.Report](resp)
	if err != nil {
		c.api.logger.Warn("invalid plate reports payload", zap.Error(err))
		return nil
	}
	if reports == nil {
		return []models.Report{}
	}
	return reports
}

// ListConfirmed returns a page of the leaderboard. Any failure yields
// models.EmptyPlatesList, whose page is 1 regardless of the page asked for.
func (c *PlatesClient) ListConfirmed(ctx context.Context, page int) models.PaginatedPlatesList {
	resp := c.api.do(ctx, request{
		operation: "plates.list",
		method:    http.MethodGet,
		route:     "/plates",
		path:      "/plates",
		query:     url.Values{"page": {strconv.Itoa(normalizePage(page))}},
		expect:    Expectation{Status: http.StatusOK},
	})
	if !resp.OK() {
		return models.EmptyPlatesList()
	}

	list, err := Decode[models.PaginatedPlatesList](resp)
	if err != nil {
		c.api.logger.Warn("invalid plates payload", zap.Error(err))
		return models.EmptyPlatesList()
	}
	if list.Plates == nil {
		list.Plates = []models.Plate{}
	}
	return list
}
