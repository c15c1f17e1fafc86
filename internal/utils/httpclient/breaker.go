package httpclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/observability"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerTransport is a RoundTripper that stops calling the backend after
// repeated transport failures. Only failed round trips count against the
// breaker; any HTTP response, 5xx included, is a success at this layer.
type BreakerTransport struct {
	next http.RoundTripper
	cb   *gobreaker.CircuitBreaker[*http.Response]
	name string
}

// NewBreakerTransport wraps next. timeout is how long the circuit stays open
// before letting trial requests through.
func NewBreakerTransport(name string, next http.RoundTripper, timeout time.Duration) *BreakerTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	observability.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Logger.Warn("opening circuit breaker",
					zap.String("breaker", name),
					zap.Uint32("failures", counts.TotalFailures),
					zap.Float64("failure_rate", failureRatio))
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Info("circuit breaker state transition",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			observability.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			observability.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerTransport{next: next, cb: cb, name: name}
}

// RoundTrip implements http.RoundTripper
func (t *BreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.cb.Execute(func() (*http.Response, error) {
		return t.next.RoundTrip(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Logger.Debug("request rejected by circuit breaker",
				zap.String("breaker", t.name),
				zap.String("path", req.URL.Path))
		}
		// RoundTrippers must close the request body even on failure
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}
	return resp, nil
}

// State reports the current breaker state
func (t *BreakerTransport) State() gobreaker.State {
	return t.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
