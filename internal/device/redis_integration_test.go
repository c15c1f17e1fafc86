//go:build integration

package device

import (
	"context"
	"testing"

	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisStorage_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	defer testcontainers.TerminateContainer(container)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := config.NewRedis(ctx, &config.Config{RedisURI: endpoint})
	require.NoError(t, err)
	defer client.Close()

	storage := NewRedisStorage(client, "test:device")

	_, err = storage.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, models.ErrDeviceIDNotSet)

	provider := NewProvider(storage, logging.Logger)
	id, err := provider.Ensure(ctx)
	require.NoError(t, err)

	assert.Equal(t, id, provider.DeviceID(ctx))

	raw, err := client.Get(ctx, "test:device:"+StorageKey).Result()
	require.NoError(t, err)
	assert.Equal(t, id, raw)
}
