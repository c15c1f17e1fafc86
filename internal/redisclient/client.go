package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
}

// NewClient creates a new traced Redis client for single Redis instance
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client}
}

// NewClusterClient creates a new traced Redis client for Redis cluster
func NewClusterClient(client *redis.ClusterClient) *Client {
	return &Client{cmdable: client}
}

// traced runs one command inside a span. redis.Nil is a miss, not an error.
func (c *Client) traced(ctx context.Context, operation string, attrs []attribute.KeyValue, run func(ctx context.Context) error) {
	start := time.Now()
	attrs = append(attrs,
		attribute.String("redis.operation", operation),
		attribute.String("redis.client", "app-imbecis"),
	)
	ctx, span := otel.Tracer("redis").Start(ctx, "redis."+operation, trace.WithAttributes(attrs...))
	defer func() {
		duration := time.Since(start)
		span.SetAttributes(
			attribute.Int64("redis.duration_ms", duration.Milliseconds()),
			attribute.String("redis.duration", duration.String()),
		)
		span.End()
	}()

	if err := run(ctx); err != nil && !errors.Is(err, redis.Nil) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("redis.error", err.Error()))
		return
	}
	span.SetStatus(codes.Ok, "success")
}

// Get wraps Redis Get with tracing
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	var cmd *redis.StringCmd
	c.traced(ctx, "get", []attribute.KeyValue{attribute.String("redis.key", key)}, func(ctx context.Context) error {
		cmd = c.cmdable.Get(ctx, key)
		return cmd.Err()
	})
	return cmd
}

// Set wraps Redis Set with tracing
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	var cmd *redis.StatusCmd
	attrs := []attribute.KeyValue{
		attribute.String("redis.key", key),
		attribute.String("redis.expiration", expiration.String()),
	}
	c.traced(ctx, "set", attrs, func(ctx context.Context) error {
		cmd = c.cmdable.Set(ctx, key, value, expiration)
		return cmd.Err()
	})
	return cmd
}

// Del wraps Redis Del with tracing
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var cmd *redis.IntCmd
	attrs := []attribute.KeyValue{
		attribute.StringSlice("redis.keys", keys),
		attribute.Int("redis.key_count", len(keys)),
	}
	c.traced(ctx, "del", attrs, func(ctx context.Context) error {
		cmd = c.cmdable.Del(ctx, keys...)
		return cmd.Err()
	})
	return cmd
}

// Ping wraps Redis Ping with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	var cmd *redis.StatusCmd
	c.traced(ctx, "ping", nil, func(ctx context.Context) error {
		cmd = c.cmdable.Ping(ctx)
		return cmd.Err()
	})
	return cmd
}

// Close releases the underlying connection pool when the wrapped client has one
func (c *Client) Close() error {
	if closer, ok := c.cmdable.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
