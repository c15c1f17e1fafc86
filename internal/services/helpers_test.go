package services

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/device"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/store"
)

// captured is what the fake backend saw of one request
type captured struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// fakeBackend records requests and answers with the handler of the route
type fakeBackend struct {
	mu       sync.Mutex
	requests []captured
	mux      *http.ServeMux
	server   *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{mux: http.NewServeMux()}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, captured{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		b.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) handle(pattern string, fn http.HandlerFunc) {
	b.mux.HandleFunc(pattern, fn)
}

func (b *fakeBackend) last() captured {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return captured{}
	}
	return b.requests[len(b.requests)-1]
}

func (b *fakeBackend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// envelope answers with the standard wrapper
func envelope(status int, success bool, message string, payload interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{"success": success}
		if message != "" {
			body["message"] = message
		}
		if payload != nil {
			body["payload"] = payload
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:     baseURL,
		HTTPTimeout:    5 * time.Second,
		Locale:         "pt",
		Municipalities: config.DefaultMunicipalities,
	}
}

type testEnv struct {
	backend       *fakeBackend
	clients       *Clients
	session       *Session
	notifications *store.Notifications
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := newFakeBackend(t)
	session := NewSession()
	notifications := store.NewNotifications()
	clients := NewClients(testConfig(backend.server.URL), backend.server.Client(), device.Static("device-1"), session, notifications, logging.Logger)
	return &testEnv{backend: backend, clients: clients, session: session, notifications: notifications}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// newUnreachableEnv builds clients whose every request fails in transport
func newUnreachableEnv(t *testing.T) *testEnv {
	t.Helper()
	httpClient := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})}
	session := NewSession()
	notifications := store.NewNotifications()
	clients := NewClients(testConfig("http://backend.invalid"), httpClient, device.Static("device-1"), session, notifications, logging.Logger)
	return &testEnv{clients: clients, session: session, notifications: notifications}
}
