package models

// Envelope is the wrapper every backend response uses
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Payload T      `json:"payload"`
}

// Failed builds a failed envelope carrying a display message and a default payload
func Failed[T any](message string, payload T) Envelope[T] {
	return Envelope[T]{Success: false, Message: message, Payload: payload}
}

// Result is the outcome of a call whose payload the caller does not need
type Result struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"-"`
}

// CreateReportResult is the outcome of opening a report
type CreateReportResult struct {
	Result
	ReportID string `json:"reportId,omitempty"`
}

// ReportResult is the outcome of fetching one report
type ReportResult struct {
	Result
	Report *Report `json:"report"`
}
