package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/imbecis/app-imbecis/internal/messages"
	"github.com/imbecis/app-imbecis/internal/models"
)

// maxBodySize bounds how much of a response body is read
const maxBodySize = 10 << 20

// Response is a backend exchange reduced to the envelope contract
type Response struct {
	Kind    models.ErrorKind
	Status  int
	Message string
	Payload json.RawMessage
	Header  http.Header
	// Err is the underlying cause for logs and spans, nil on success
	Err error
}

// OK reports whether the call succeeded
func (r Response) OK() bool {
	return r.Kind == models.KindNone
}

// Result drops the payload
func (r Response) Result() models.Result {
	return models.Result{Success: r.OK(), Message: r.Message, Kind: r.Kind}
}

// Normalizer classifies raw HTTP exchanges and picks display messages
type Normalizer struct {
	catalog *messages.Catalog
}

// NewNormalizer creates a normalizer using catalog for fallback messages
func NewNormalizer(catalog *messages.Catalog) *Normalizer {
	if catalog == nil {
		catalog = messages.New(messages.DefaultLocale)
	}
	return &Normalizer{catalog: catalog}
}

// Catalog returns the message catalog in use
func (n *Normalizer) Catalog() *messages.Catalog {
	return n.catalog
}

// Expectation describes what counts as success for one operation
type Expectation struct {
	// Status is the only HTTP status accepted as success
	Status int
	// RateLimited maps HTTP 429 to models.KindRateLimited
	RateLimited bool
	// TransportMessage overrides the transport failure message
	TransportMessage messages.Key
	// GenericFallback uses the unknown error instead of the status-coded
	// message when the body carries no message
	GenericFallback bool
}

// Normalize reduces resp (or the transport error) to a Response. It closes
// resp.Body.
func (n *Normalizer) Normalize(resp *http.Response, err error, exp Expectation) Response {
	if err != nil || resp == nil {
		if err == nil {
			err = errors.New("no response")
		}
		key := messages.Unknown
		if exp.TransportMessage != "" {
			key = exp.TransportMessage
		}
		return Response{Kind: models.KindTransport, Message: n.catalog.Get(key), Err: err}
	}
	defer resp.Body.Close()

	out := Response{Status: resp.StatusCode, Header: resp.Header}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	var env models.Envelope[json.RawMessage]
	parsed := false
	if readErr == nil && len(bytes.TrimSpace(raw)) > 0 {
		parsed = json.Unmarshal(raw, &env) == nil
	}

	if resp.StatusCode == exp.Status && parsed && env.Success {
		out.Kind = models.KindNone
		out.Message = env.Message
		out.Payload = env.Payload
		return out
	}

	switch {
	case exp.RateLimited && resp.StatusCode == http.StatusTooManyRequests:
		out.Kind = models.KindRateLimited
		out.Message = n.catalog.Get(messages.RateLimited)
	case parsed && env.Message != "":
		out.Kind = models.KindProtocol
		out.Message = env.Message
	case resp.StatusCode != exp.Status && !exp.GenericFallback:
		out.Kind = models.KindProtocol
		out.Message = n.catalog.Status(resp.StatusCode)
	default:
		out.Kind = models.KindProtocol
		out.Message = n.catalog.Get(messages.Unknown)
	}

	switch {
	case readErr != nil:
		out.Err = fmt.Errorf("reading response body: %w", readErr)
	case resp.StatusCode != exp.Status:
		out.Err = fmt.Errorf("%w: got %d, want %d", models.ErrUnexpectedStatus, resp.StatusCode, exp.Status)
	default:
		out.Err = models.ErrUnsuccessfulRequest
	}
	return out
}

// Decode unmarshals the payload of a successful Response
func Decode[T any](r Response) (T, error) {
	var v T
	trimmed := bytes.TrimSpace(r.Payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return v, models.ErrMissingPayload
	}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return v, fmt.Errorf("decoding payload: %w", err)
	}
	return v, nil
}
