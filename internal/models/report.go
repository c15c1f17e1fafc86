package models

import "time"

// Report represents a single violation report as returned by the backend
type Report struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	DeviceUUID   string `json:"deviceUUID"`
	Municipality string `json:"municipality"`
	Picture      string `json:"picture,omitempty"`
	UpdatedAt    string `json:"updatedAt"`
	CreatedAt    string `json:"createdAt"`
}

// PlateInList is the country/number pair embedded in report listings
type PlateInList struct {
	Country string `json:"country"`
	Number  string `json:"number"`
}

// ReportSummary is a report as it appears in the feed and admin listings
type ReportSummary struct {
	ID              string       `json:"id"`
	Status          string       `json:"status"`
	Municipality    string       `json:"municipality,omitempty"`
	OriginalPicture string       `json:"originalPicture,omitempty"`
	PublicPicture   string       `json:"publicPicture,omitempty"`
	SuggestedPlate  *PlateInList `json:"suggestedPlate,omitempty"`
	ConfirmedPlate  *PlateInList `json:"confirmedPlate,omitempty"`
	NotSureVotes    int          `json:"notSureVotes"`
	ImbecileVotes   int          `json:"imbecileVotes"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// FeedRequest selects a page of the public feed
type FeedRequest struct {
	Page         int    `json:"page" validate:"gte=0"`
	Municipality string `json:"municipality,omitempty"`
}

// CreateReportRequest is the body sent when opening a new report
type CreateReportRequest struct {
	Location Coordinates `json:"location"`
}

// CreateReportPayload is the payload of a successful report creation
type CreateReportPayload struct {
	ID string `json:"id"`
}

// ListReportsRequest filters the admin report listing. Zero values are not
// forwarded.
type ListReportsRequest struct {
	Page         int    `json:"page" validate:"gte=0"`
	Status       string `json:"status,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	SortOrder    string `json:"sortOrder,omitempty"`
}

// ListReportsResponse is the payload of the admin report listing
type ListReportsResponse struct {
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Reports []ReportSummary `json:"reports"`
}

// UpdateReportRequest carries the only fields an administrator may change
type UpdateReportRequest struct {
	ReportID     string `json:"-" validate:"required"`
	Status       string `json:"status" validate:"required"`
	PlateCountry string `json:"plateCountry,omitempty"`
	PlateNumber  string `json:"plateNumber,omitempty"`
}

// Vote judgments accepted by the backend
const (
	VoteImbecile    = "imbecile"
	VoteNotImbecile = "not_imbecile"
	VoteNotSure     = "not_sure"
)

// VoteRequest is a reviewer's judgment on a report
type VoteRequest struct {
	PlateNumber  string `json:"plateNumber"`
	PlateCountry string `json:"plateCountry"`
	Result       string `json:"result" validate:"required"`
}

// HeatCoordinate is one point of the reports heat map
type HeatCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    float64 `json:"weight,omitempty"`
}

// HeatMapPayload is the payload of the heat map endpoint
type HeatMapPayload struct {
	Coordinates []HeatCoordinate `json:"coordinates"`
}

// Picture is an evidence image sent as multipart form data
type Picture struct {
	Filename    string
	ContentType string
	Data        []byte
}
