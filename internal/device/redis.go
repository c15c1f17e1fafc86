package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/redisclient"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps device values in Redis under namespace, for
// deployments where several processes share one device profile.
type RedisStorage struct {
	client    *redisclient.Client
	namespace string
}

// NewRedisStorage stores keys as "<namespace>:<key>"
func NewRedisStorage(client *redisclient.Client, namespace string) *RedisStorage {
	if namespace == "" {
		namespace = "imbecis:device"
	}
	return &RedisStorage{client: client, namespace: namespace}
}

func (r *RedisStorage) key(k string) string {
	return r.namespace + ":" + k
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", models.ErrDeviceIDNotSet
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	return val, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	return nil
}
