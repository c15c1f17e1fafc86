package models

import "errors"

// ErrorKind classifies why a client operation did not succeed
type ErrorKind int

const (
	// KindNone means the operation succeeded
	KindNone ErrorKind = iota
	// KindTransport means no response was received (network, DNS, timeout, open circuit)
	KindTransport
	// KindProtocol means a response arrived with success=false or an unexpected status
	KindProtocol
	// KindRateLimited is a protocol failure with HTTP 429 on vote submission
	KindRateLimited
	// KindInvalidRequest means the request was rejected before being sent
	KindInvalidRequest
)

// String returns the label used in logs and metrics
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindRateLimited:
		return "rate_limited"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// Error constants for client operations
var (
	ErrEmptyReportID       = errors.New("report id is required")
	ErrEmptyRegionID       = errors.New("region id is required")
	ErrEmptyPlateID        = errors.New("plate id is required")
	ErrInvalidPlate        = errors.New("plate country and number are required")
	ErrInvalidPage         = errors.New("page must not be negative")
	ErrInvalidCoordinates  = errors.New("coordinates out of range")
	ErrEmptyPicture        = errors.New("picture is empty")
	ErrStorageUnavailable  = errors.New("device storage unavailable")
	ErrDeviceIDNotSet      = errors.New("device id not set")
	ErrMissingPayload      = errors.New("response payload missing")
	ErrUnexpectedStatus    = errors.New("unexpected response status")
	ErrUnsuccessfulRequest = errors.New("backend reported failure")
)
