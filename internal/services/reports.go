package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/messages"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/store"
	"github.com/imbecis/app-imbecis/internal/validation"
	"go.uber.org/zap"
)

// ReportsClient wraps the /reports endpoints
type ReportsClient struct {
	api            *APIClient
	notifications  *store.Notifications
	municipalities func(string) bool
}

// NewReportsClient creates a reports client. notifications receives the
// outcome of admin update and delete; it may be nil.
func NewReportsClient(api *APIClient, notifications *store.Notifications, cfg *config.Config) *ReportsClient {
	return &ReportsClient{
		api:            api,
		notifications:  notifications,
		municipalities: cfg.IsMunicipality,
	}
}

func reportPath(id, suffix string) string {
	return "/reports/" + url.PathEscape(id) + suffix
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ListFeed returns one page of the public feed, empty on any failure. The
// municipality filter is forwarded only when it is a known municipality.
func (c *ReportsClient) ListFeed(ctx context.Context, req models.FeedRequest) []models.ReportSummary {
	query := url.Values{"page": {strconv.Itoa(normalizePage(req.Page))}}
	if req.Municipality != "" && c.municipalities(req.Municipality) {
		query.Set("municipality", req.Municipality)
	}

	resp := c.api.do(ctx, request{
		operation: "reports.feed",
		method:    http.MethodGet,
		route:     "/reports/feed",
		path:      "/reports/feed",
		query:     query,
		expect:    Expectation{Status: http.StatusOK},
	})
	if !resp.OK() {
		return []models.ReportSummary{}
	}

	reports, err := Decode[[]models.ReportSummary](resp)
	if err != nil {
		c.api.logger.Warn("invalid feed payload", zap.Error(err))
		return []models.ReportSummary{}
	}
	if reports == nil {
		return []models.ReportSummary{}
	}
	return reports
}

// Create opens a report at location. On success the session token is
// replaced with the one in the response.
func (c *ReportsClient) Create(ctx context.Context, location models.Coordinates) models.CreateReportResult {
	if err := validation.ValidateStruct(location); err != nil {
		return models.CreateReportResult{Result: c.api.invalid("reports.create", err).Result()}
	}

	resp := c.api.do(ctx, request{
		operation:    "reports.create",
		method:       http.MethodPost,
		route:        "/reports",
		path:         "/reports",
		body:         models.CreateReportRequest{Location: location},
		expect:       Expectation{Status: http.StatusCreated},
		captureToken: true,
	})
	if !resp.OK() {
		return models.CreateReportResult{Result: resp.Result()}
	}

	payload, err := Decode[models.CreateReportPayload](resp)
	if err != nil || payload.ID == "" {
		c.api.logger.Warn("report created without id", zap.Error(err))
		return models.CreateReportResult{Result: models.Result{
			Success: false,
			Message: c.api.Catalog().Get(messages.Unknown),
			Kind:    models.KindProtocol,
		}}
	}

	return models.CreateReportResult{Result: resp.Result(), ReportID: payload.ID}
}

// UploadPicture attaches the evidence picture of a new report
func (c *ReportsClient) UploadPicture(ctx context.Context, reportID string, picture models.Picture) models.Result {
	return c.sendPicture(ctx, "reports.upload_picture", "/upload-picture", reportID, picture)
}

// UpdatePicture replaces the evidence picture of a report
func (c *ReportsClient) UpdatePicture(ctx context.Context, reportID string, picture models.Picture) models.Result {
	return c.sendPicture(ctx, "reports.update_picture", "/update-picture", reportID, picture)
}

func (c *ReportsClient) sendPicture(ctx context.Context, operation, suffix, reportID string, picture models.Picture) models.Result {
	if reportID == "" {
		return c.api.invalid(operation, models.ErrEmptyReportID).Result()
	}

	return c.api.do(ctx, request{
		operation: operation,
		method:    http.MethodPost,
		route:     "/reports/{id}" + suffix,
		path:      reportPath(reportID, suffix),
		picture:   &picture,
		expect:    Expectation{Status: http.StatusCreated},
	}).Result()
}

// GetForReview returns the next report awaiting judgment, nil when there is
// none or the call fails. On success the session token is replaced.
func (c *ReportsClient) GetForReview(ctx context.Context) *models.Report {
	resp := c.api.do(ctx, request{
		operation:    "reports.for_review",
		method:       http.MethodGet,
		route:        "/reports/for-review",
		path:         "/reports/for-review",
		expect:       Expectation{Status: http.StatusOK},
		captureToken: true,
	})
	if !resp.OK() {
		return nil
	}

	report, err := Decode[models.Report](resp)
	if err != nil {
		c.api.logger.Debug("no report for review", zap.Error(err))
		return nil
	}
	return &report
}

// SubmitVote records a judgment on reportID. HTTP 429 yields the
// rate-limit message.
func (c *ReportsClient) SubmitVote(ctx context.Context, reportID string, vote models.VoteRequest) models.Result {
	if reportID == "" {
		return c.api.invalid("reports.vote", models.ErrEmptyReportID).Result()
	}
	if err := validation.ValidateStruct(vote); err != nil {
		return c.api.invalid("reports.vote", err).Result()
	}

	return c.api.do(ctx, request{
		operation: "reports.vote",
		method:    http.MethodPost,
		route:     "/reports/{id}/vote",
		path:      reportPath(reportID, "/vote"),
		body:      vote,
		expect:    Expectation{Status: http.StatusCreated, RateLimited: true},
	}).Result()
}

// ListAdmin returns a filtered page of reports. Only non-zero filters are
// sent. The payload is nil on failure.
func (c *ReportsClient) ListAdmin(ctx context.Context, req models.ListReportsRequest) models.Envelope[*models.ListReportsResponse] {
	if err := validation.ValidateStruct(req); err != nil {
		return models.Failed[*models.ListReportsResponse](c.api.invalid("reports.list", err).Message, nil)
	}

	query := url.Values{}
	if req.Page > 0 {
		query.Set("page", strconv.Itoa(req.Page))
	}
	if req.Status != "" {
		query.Set("status", req.Status)
	}
	if req.Municipality != "" {
		query.Set("municipality", req.Municipality)
	}
	if req.SortOrder != "" {
		query.Set("sortOrder", req.SortOrder)
	}

	resp := c.api.do(ctx, request{
		operation: "reports.list",
		method:    http.MethodGet,
		route:     "/reports",
		path:      "/reports",
		query:     query,
		expect:    Expectation{Status: http.StatusOK, TransportMessage: messages.ListReportsUnknown},
	})
	if !resp.OK() {
		return models.Failed[*models.ListReportsResponse](resp.Message, nil)
	}

	payload, err := Decode[models.ListReportsResponse](resp)
	if err != nil {
		c.api.logger.Warn("invalid report list payload", zap.Error(err))
		return models.Failed[*models.ListReportsResponse](c.api.Catalog().Get(messages.ListReportsUnknown), nil)
	}
	if payload.Reports == nil {
		payload.Reports = []models.ReportSummary{}
	}
	return models.Envelope[*models.ListReportsResponse]{Success: true, Message: resp.Message, Payload: &payload}
}

// UpdateAdmin changes the status or plate of a report and pushes a
// notification with the outcome.
func (c *ReportsClient) UpdateAdmin(ctx context.Context, req models.UpdateReportRequest) bool {
	if err := validation.ValidateStruct(req); err != nil {
		return c.notify(c.api.invalid("reports.update", err))
	}

	return c.notify(c.api.do(ctx, request{
		operation: "reports.update",
		method:    http.MethodPatch,
		route:     "/reports/{id}",
		path:      reportPath(req.ReportID, ""),
		body:      req,
		expect:    Expectation{Status: http.StatusOK},
	}))
}

// DeleteAdmin removes a report and pushes a notification with the outcome
func (c *ReportsClient) DeleteAdmin(ctx context.Context, reportID string) bool {
	if reportID == "" {
		return c.notify(c.api.invalid("reports.delete", models.ErrEmptyReportID))
	}

	return c.notify(c.api.do(ctx, request{
		operation: "reports.delete",
		method:    http.MethodDelete,
		route:     "/reports/{id}",
		path:      reportPath(reportID, ""),
		expect:    Expectation{Status: http.StatusOK},
	}))
}

// notify pushes the outcome of an admin mutation and returns its success
func (c *ReportsClient) notify(resp Response) bool {
	if c.notifications != nil {
		if resp.OK() {
			c.notifications.Push(resp.Message, models.NotificationSuccess)
		} else {
			c.notifications.Push(resp.Message, models.NotificationError)
		}
	}
	return resp.OK()
}

// GetByID fetches one report
func (c *ReportsClient) GetByID(ctx context.Context, id string) models.ReportResult {
	if id == "" {
		return models.ReportResult{Result: c.api.invalid("reports.get", models.ErrEmptyReportID).Result()}
	}

	resp := c.api.do(ctx, request{
		operation: "reports.get",
		method:    http.MethodGet,
		route:     "/reports/{id}",
		path:      reportPath(id, ""),
		expect:    Expectation{Status: http.StatusOK},
	})
	if !resp.OK() {
		return models.ReportResult{Result: resp.Result()}
	}

	report, err := Decode[models.Report](resp)
	if err != nil {
		c.api.logger.Warn("invalid report payload", zap.String("report_id", id), zap.Error(err))
		return models.ReportResult{Result: models.Result{
			Success: false,
			Message: c.api.Catalog().Get(messages.Unknown),
			Kind:    models.KindProtocol,
		}}
	}
	return models.ReportResult{Result: resp.Result(), Report: &report}
}

// CountForReview returns how many reports await judgment, 0 on any failure
func (c *ReportsClient) CountForReview(ctx context.Context) int {
	resp := c.api.do(ctx, request{
		operation: "reports.count_for_review",
		method:    http.MethodGet,
		route:     "/reports/for-review/count",
		path:      "/reports/for-review/count",
		expect:    Expectation{Status: http.StatusOK},
	})
	if !resp.OK() {
		return 0
	}

	count, err := Decode[int](resp)
	if err != nil {
		// also accept {"count": n}
		wrapped, werr := Decode[struct {
			Count int `json:"count"`
		}](resp)
		if werr != nil {
			return 0
		}
		count = wrapped.Count
	}
	if count < 0 {
		return 0
	}
	return count
}

// HeatMap returns the weighted report positions, empty on any failure
func (c *ReportsClient) HeatMap(ctx context.Context) []models.HeatCoordinate {
	resp := c.api.do(ctx, request{
		operation: "reports.heat_map",
		method:    http.MethodGet,
		route:     "/reports/heat-map",
		path:      "/reports/heat-map",
		expect:    Expectation{Status: http.StatusOK},
	})
	if !resp.OK() {
		return []models.HeatCoordinate{}
	}

	payload, err := Decode[models.HeatMapPayload](resp)
	if err != nil || payload.Coordinates == nil {
		return []models.HeatCoordinate{}
	}
	return payload.Coordinates
}
