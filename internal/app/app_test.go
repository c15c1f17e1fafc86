package app

import (
	"context"
	"testing"
	"time"

	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/observability"
	"github.com/imbecis/app-imbecis/internal/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		APIBaseURL:            "http://localhost:1",
		HTTPTimeout:           time.Second,
		Locale:                "pt",
		CircuitBreakerEnabled: true,
		CircuitBreakerTimeout: time.Second,
		DeviceStore:           config.DeviceStoreBadger,
		DeviceStorePath:       t.TempDir(),
	}
}

func TestNew(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), logging.Logger)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Clients)
	assert.Same(t, a.Session, a.Clients.API.Session())

	id, err := a.Devices.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, a.Devices.DeviceID(context.Background()))
}

func TestNew_NotificationMetrics(t *testing.T) {
	a, err := New(context.Background(), &config.Config{DeviceStore: config.DeviceStoreMemory}, logging.Logger)
	require.NoError(t, err)
	defer a.Close()

	before := testutil.ToFloat64(observability.NotificationsPushed.WithLabelValues("warning"))
	a.Notifications.Push("Sem localização", models.NotificationWarning)
	assert.Equal(t, before+1, testutil.ToFloat64(observability.NotificationsPushed.WithLabelValues("warning")))
}

func TestHealthChecks(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), logging.Logger)
	require.NoError(t, err)
	defer a.Close()

	checks := a.HealthChecks()
	require.Contains(t, checks, "device_store")
	require.Contains(t, checks, "backend")

	for name, check := range checks {
		assert.NoError(t, check(context.Background()), name)
	}
}

func TestClientsFor(t *testing.T) {
	a, err := New(context.Background(), &config.Config{DeviceStore: config.DeviceStoreMemory}, logging.Logger)
	require.NoError(t, err)
	defer a.Close()

	session := services.NewSession()
	clients := a.ClientsFor(a.Devices, session)
	assert.Same(t, session, clients.API.Session())
	assert.NotSame(t, a.Clients, clients)
}

func TestNew_UnknownStore(t *testing.T) {
	_, err := New(context.Background(), &config.Config{DeviceStore: "floppy"}, logging.Logger)
	assert.Error(t, err)
}
