package services

import (
	"context"

	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/utils"
	"golang.org/x/sync/errgroup"
)

// FeedPage is the data behind the public feed
type FeedPage struct {
	Reports []models.ReportSummary `json:"reports"`
}

// PlatePage is a plate with its reports; Plate is nil when unknown
type PlatePage struct {
	Plate   *models.Plate   `json:"plate"`
	Reports []models.Report `json:"reports"`
}

// ReviewPage is the next report to judge and how many are pending
type ReviewPage struct {
	Loaded          bool           `json:"loaded"`
	ReportForReview *models.Report `json:"reportForReview"`
	PendingCount    int            `json:"pendingCount"`
}

// ReportFilters echoes the filters an admin listing was loaded with
type ReportFilters struct {
	Status       string `json:"status"`
	Municipality string `json:"municipality"`
	SortOrder    string `json:"sortOrder"`
}

// AdminReportsPage is the admin report listing
type AdminReportsPage struct {
	Reports []models.ReportSummary `json:"reports"`
	Page    int                    `json:"page"`
	Total   int                    `json:"total"`
	Filters ReportFilters          `json:"filters"`
	Message string                 `json:"message,omitempty"`
}

// MapPage is the heat map data
type MapPage struct {
	Coordinates []models.HeatCoordinate `json:"coordinates"`
}

// PageLoader assembles the data each page needs. Loaders never fail: every
// backend failure degrades to a default value.
type PageLoader struct {
	reports *ReportsClient
	plates  *PlatesClient
}

// NewPageLoader creates a loader over the given clients
func NewPageLoader(clients *Clients) *PageLoader {
	return &PageLoader{reports: clients.Reports, plates: clients.Plates}
}

// Feed loads a page of the public feed
func (l *PageLoader) Feed(ctx context.Context, page int, municipality string) FeedPage {
	ctx, _, end := utils.TraceStep(ctx, "feed", "load")
	defer end()

	return FeedPage{Reports: l.reports.ListFeed(ctx, models.FeedRequest{
		Page:         normalizePage(page),
		Municipality: municipality,
	})}
}

// Plates loads a page of the leaderboard
func (l *PageLoader) Plates(ctx context.Context, page int) models.PaginatedPlatesList {
	ctx, _, end := utils.TraceStep(ctx, "plates", "load")
	defer end()

	return l.plates.ListConfirmed(ctx, page)
}

// Plate loads a plate and then its reports
func (l *PageLoader) Plate(ctx context.Context, country, number string) PlatePage {
	ctx, _, end := utils.TraceStep(ctx, "plate", "load")
	defer end()

	plate := l.plates.GetByCountryAndNumber(ctx, country, number)
	if plate == nil {
		return PlatePage{Plate: nil, Reports: []models.Report{}}
	}

	reports := l.plates.GetReportsForPlate(ctx, plate.ID)
	if reports == nil {
		reports = []models.Report{}
	}
	return PlatePage{Plate: plate, Reports: reports}
}

// Review loads the next report to judge together with the pending count
func (l *PageLoader) Review(ctx context.Context) ReviewPage {
	ctx, _, end := utils.TraceStep(ctx, "review", "load")
	defer end()

	var page ReviewPage
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page.ReportForReview = l.reports.GetForReview(gCtx)
		return nil
	})
	g.Go(func() error {
		page.PendingCount = l.reports.CountForReview(gCtx)
		return nil
	})
	// the client calls never return errors
	_ = g.Wait()

	page.Loaded = true
	return page
}

// Report loads one report
func (l *PageLoader) Report(ctx context.Context, id string) models.ReportResult {
	ctx, _, end := utils.TraceStep(ctx, "report", "load")
	defer end()

	return l.reports.GetByID(ctx, id)
}

// AdminReports loads the admin listing. Page defaults to 1 and sort order
// to desc.
func (l *PageLoader) AdminReports(ctx context.Context, filters ReportFilters, page int) AdminReportsPage {
	ctx, _, end := utils.TraceStep(ctx, "admin_reports", "load")
	defer end()

	page = normalizePage(page)
	if filters.SortOrder == "" {
		filters.SortOrder = "desc"
	}

	resp := l.reports.ListAdmin(ctx, models.ListReportsRequest{
		Page:         page,
		Status:       filters.Status,
		Municipality: filters.Municipality,
		SortOrder:    filters.SortOrder,
	})

	out := AdminReportsPage{Reports: []models.ReportSummary{}, Page: 1, Filters: filters}
	if !resp.Success || resp.Payload == nil {
		out.Message = resp.Message
		return out
	}
	if resp.Payload.Reports != nil {
		out.Reports = resp.Payload.Reports
	}
	if resp.Payload.Page > 0 {
		out.Page = resp.Payload.Page
	}
	out.Total = resp.Payload.Total
	return out
}

// Map loads the heat map
func (l *PageLoader) Map(ctx context.Context) MapPage {
	ctx, _, end := utils.TraceStep(ctx, "map", "load")
	defer end()

	return MapPage{Coordinates: l.reports.HeatMap(ctx)}
}
