package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/device"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/messages"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/observability"
	"github.com/imbecis/app-imbecis/internal/utils"
	"go.uber.org/zap"
)

// DeviceHeader carries the device identity on every request
const DeviceHeader = "device-uuid"

// request describes one outbound call
type request struct {
	// operation labels logs, spans and metrics, e.g. "reports.vote"
	operation string
	method    string
	// route is the path template used in spans, path the concrete path
	route   string
	path    string
	query   url.Values
	body    interface{}
	picture *models.Picture
	expect  Expectation
	// captureToken copies the csrf-token response header into the session
	captureToken bool
}

func (r request) mutating() bool {
	switch r.method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// APIClient performs envelope-shaped calls against the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	devices    device.IDProvider
	session    *Session
	normalizer *Normalizer
	logger     *logging.SafeLogger
}

// NewAPIClient creates the shared base client. session may be nil, in which
// case no token is attached or captured.
func NewAPIClient(cfg *config.Config, httpClient *http.Client, devices device.IDProvider, session *Session, logger *logging.SafeLogger) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if devices == nil {
		devices = device.Static("")
	}
	return &APIClient{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: httpClient,
		devices:    devices,
		session:    session,
		normalizer: NewNormalizer(messages.New(cfg.Locale)),
		logger:     logger,
	}
}

// Session returns the session shared by the clients built on c
func (c *APIClient) Session() *Session {
	return c.session
}

// Catalog returns the message catalog used for fallbacks
func (c *APIClient) Catalog() *messages.Catalog {
	return c.normalizer.Catalog()
}

// invalid is the outcome of a request rejected before reaching the network
func (c *APIClient) invalid(operation string, err error) Response {
	observability.APIRequests.WithLabelValues(operation, models.KindInvalidRequest.String()).Inc()
	c.logger.Debug("request rejected locally",
		zap.String("operation", operation),
		zap.Error(err))
	return Response{
		Kind:    models.KindInvalidRequest,
		Message: c.Catalog().ForKind(models.KindInvalidRequest),
		Err:     err,
	}
}

// do issues req and normalizes the result. It never returns an error: every
// failure is folded into the Response.
func (c *APIClient) do(ctx context.Context, req request) Response {
	ctx, span, end := utils.TraceHTTPOperation(ctx, req.method, req.route, req.operation)
	defer end()

	start := time.Now()
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return c.invalid(req.operation, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	out := c.normalizer.Normalize(resp, err, req.expect)
	duration := time.Since(start)

	observability.APIRequests.WithLabelValues(req.operation, out.Kind.String()).Inc()
	observability.APIRequestDuration.WithLabelValues(req.operation).Observe(duration.Seconds())
	utils.AddSpanAttribute(span, "http.status_code", out.Status)
	utils.AddSpanAttribute(span, "api.outcome", out.Kind.String())

	if !out.OK() {
		utils.RecordErrorInSpan(span, out.Err, map[string]interface{}{
			"error.kind": out.Kind.String(),
		})
		c.logger.Warn("backend call failed",
			zap.String("operation", req.operation),
			zap.Int("status", out.Status),
			zap.String("kind", out.Kind.String()),
			zap.Duration("duration", duration),
			zap.Error(out.Err))
		return out
	}

	if req.captureToken && c.session != nil {
		token := out.Header.Get(TokenHeader)
		c.session.SetToken(token)
		observability.SessionTokenUpdates.WithLabelValues(req.operation, fmt.Sprint(token != "")).Inc()
		c.logger.Debug("session token updated",
			zap.String("operation", req.operation),
			zap.String("token", observability.MaskToken(token)))
	}

	c.logger.Debug("backend call succeeded",
		zap.String("operation", req.operation),
		zap.Int("status", out.Status),
		zap.Duration("duration", duration))
	return out
}

// build assembles the HTTP request with its headers and body
func (c *APIClient) build(ctx context.Context, req request) (*http.Request, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.picture != nil:
		buf, ct, err := encodePicture(req.picture)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.body != nil:
		raw, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	// always present, possibly empty
	httpReq.Header[DeviceHeader] = []string{c.devices.DeviceID(ctx)}
	if req.mutating() {
		if token := c.session.Token(); token != "" {
			httpReq.Header[TokenHeader] = []string{token}
		}
	}
	return httpReq, nil
}

// encodePicture writes the picture as the "picture" form field
func encodePicture(p *models.Picture) (*bytes.Buffer, string, error) {
	if len(p.Data) == 0 {
		return nil, "", models.ErrEmptyPicture
	}

	filename := p.Filename
	if filename == "" {
		filename = "picture"
	}
	contentType := p.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(p.Data)
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="picture"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating picture part: %w", err)
	}
	if _, err := part.Write(p.Data); err != nil {
		return nil, "", fmt.Errorf("writing picture part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
