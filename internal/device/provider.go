// Package device resolves the persistent per-device identifier sent as the
// device-uuid header on every backend call.
package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/models"
	"go.uber.org/zap"
)

// StorageKey is the key the device id lives under
const StorageKey = "deviceUUID"

// Storage is a persistent key-value store local to the device.
// Get returns models.ErrDeviceIDNotSet (possibly wrapped) when key is unset.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// IDProvider resolves the device id. It never fails: an unavailable
// backend or an unset key yields "".
type IDProvider interface {
	DeviceID(ctx context.Context) string
}

// Provider reads the device id from Storage
type Provider struct {
	storage Storage
	logger  *logging.SafeLogger
}

// NewProvider creates a provider; a nil storage means no backend is present
func NewProvider(storage Storage, logger *logging.SafeLogger) *Provider {
	return &Provider{storage: storage, logger: logger}
}

// DeviceID returns the stored id or "" when storage is missing or unset
func (p *Provider) DeviceID(ctx context.Context) string {
	if p == nil || p.storage == nil {
		return ""
	}

	id, err := p.storage.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, models.ErrDeviceIDNotSet) {
			p.logger.Debug("device id unavailable", zap.Error(err))
		}
		return ""
	}
	return id
}

// Ensure returns the stored id, generating and persisting a new UUID when
// none exists yet.
func (p *Provider) Ensure(ctx context.Context) (string, error) {
	if p == nil || p.storage == nil {
		return "", models.ErrStorageUnavailable
	}

	id, err := p.storage.Get(ctx, StorageKey)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && !errors.Is(err, models.ErrDeviceIDNotSet) {
		return "", fmt.Errorf("reading device id: %w", err)
	}

	id = uuid.NewString()
	if err := p.storage.Set(ctx, StorageKey, id); err != nil {
		return "", fmt.Errorf("persisting device id: %w", err)
	}

	p.logger.Info("generated device id")
	return id, nil
}

// Static always returns the same id
type Static string

// DeviceID implements IDProvider
func (s Static) DeviceID(context.Context) string {
	return string(s)
}

type ctxKey struct{}

// WithID attaches a device id to ctx, e.g. one forwarded from an incoming request
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id attached with WithID
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}

// ContextProvider prefers an id attached to the context and otherwise asks
// Fallback (which may be nil).
type ContextProvider struct {
	Fallback IDProvider
}

// DeviceID implements IDProvider
func (c ContextProvider) DeviceID(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id
	}
	if c.Fallback == nil {
		return ""
	}
	return c.Fallback.DeviceID(ctx)
}
