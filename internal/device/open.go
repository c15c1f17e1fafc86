package device

import (
	"context"
	"fmt"
	"io"

	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/logging"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Storage selected by cfg.DeviceStore. The returned closer
// releases the backend.
func Open(ctx context.Context, cfg *config.Config, logger *logging.SafeLogger) (Storage, io.Closer, error) {
	switch cfg.DeviceStore {
	case config.DeviceStoreMemory:
		return NewMemoryStorage(), nopCloser{}, nil
	case config.DeviceStoreRedis:
		client, err := config.NewRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStorage(client, ""), client, nil
	case config.DeviceStoreBadger, "":
		storage, err := OpenBadger(cfg.DeviceStorePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return storage, storage, nil
	default:
		return nil, nil, fmt.Errorf("unknown device store %q", cfg.DeviceStore)
	}
}
