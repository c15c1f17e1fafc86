package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/imbecis/app-imbecis/internal/config"
)

// BreakerName labels the backend circuit breaker in metrics and logs
const BreakerName = "imbecis-api"

// NewClient builds the HTTP client used against the backend API. When the
// circuit breaker is enabled the transport is wrapped with one.
func NewClient(cfg *config.Config) *http.Client {
	var transport http.RoundTripper = newTransport()
	if cfg.CircuitBreakerEnabled {
		transport = NewBreakerTransport(BreakerName, transport, cfg.CircuitBreakerTimeout)
	}

	return &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}
}

// newTransport creates a transport with pooled keep-alive connections
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
