package config

import (
	"context"
	"fmt"
	"time"

	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedis connects the traced Redis client used by the redis device store
func NewRedis(ctx context.Context, cfg *Config) (*redisclient.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisURI,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	client := redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", cfg.RedisURI),
			zap.Error(err))
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logging.Logger.Info("connected to Redis", zap.String("uri", cfg.RedisURI))
	return client, nil
}
