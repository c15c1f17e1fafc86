// Package app wires configuration, device identity, transport and stores
// into the clients shared by the binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/device"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/observability"
	"github.com/imbecis/app-imbecis/internal/services"
	"github.com/imbecis/app-imbecis/internal/store"
	"github.com/imbecis/app-imbecis/internal/utils/httpclient"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// App holds the long-lived dependencies of a process
type App struct {
	Config        *config.Config
	Storage       device.Storage
	Devices       *device.Provider
	HTTPClient    *http.Client
	Session       *services.Session
	Notifications *store.Notifications
	Location      *store.Location
	Clients       *services.Clients

	closer io.Closer
	logger *logging.SafeLogger
}

// New opens the device store and builds every client. Close releases the
// device store.
func New(ctx context.Context, cfg *config.Config, logger *logging.SafeLogger) (*App, error) {
	storage, closer, err := device.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening device store: %w", err)
	}

	notifications := store.NewNotifications()
	notifications.OnPush(func(n models.Notification) {
		observability.NotificationsPushed.WithLabelValues(string(n.Type)).Inc()
	})

	a := &App{
		Config:        cfg,
		Storage:       storage,
		Devices:       device.NewProvider(storage, logger),
		HTTPClient:    httpclient.NewClient(cfg),
		Session:       services.NewSession(),
		Notifications: notifications,
		Location:      store.NewLocation(),
		closer:        closer,
		logger:        logger,
	}
	a.Clients = services.NewClients(cfg, a.HTTPClient, a.Devices, a.Session, notifications, logger)

	return a, nil
}

// ClientsFor builds clients bound to session and resolving the device id
// through devices, sharing the app's transport.
func (a *App) ClientsFor(devices device.IDProvider, session *services.Session) *services.Clients {
	return services.NewClients(a.Config, a.HTTPClient, devices, session, a.Notifications, a.logger)
}

// HealthChecks returns the dependency checks exposed on /health
func (a *App) HealthChecks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{
		"device_store": func(ctx context.Context) error {
			_, err := a.Storage.Get(ctx, device.StorageKey)
			if err != nil && !errors.Is(err, models.ErrDeviceIDNotSet) {
				return err
			}
			return nil
		},
	}
	if breaker, ok := a.HTTPClient.Transport.(*httpclient.BreakerTransport); ok {
		checks["backend"] = func(context.Context) error {
			if breaker.State() == gobreaker.StateOpen {
				return errors.New("backend circuit open")
			}
			return nil
		}
	}
	return checks
}

// Close releases the device store
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	if err := a.closer.Close(); err != nil {
		a.logger.Warn("closing device store", zap.Error(err))
		return err
	}
	return nil
}
