package cache

import (
	"context"
	"errors"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
)

// RedisStore shares cached values between replicas. Values are stored as JSON
// under prefix+key.
type RedisStore[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *logging.Logger
	flight singleflight.Group
}

func NewRedisStore[T any](client *redis.Client, prefix string, ttl time.Duration, logger *logging.Logger) *RedisStore[T] {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisStore[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	if key == "" || s.client == nil {
		return zero, false
	}

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "redis cache get failed", "key", s.prefix+key, "error", err)
		}
		return zero, false
	}

	var value T
	if err := sonic.Unmarshal(raw, &value); err != nil {
		s.logger.WarnContext(ctx, "redis cache decode failed", "key", s.prefix+key, "error", err)
		return zero, false
	}
	return value, true
}

func (s *RedisStore[T]) Set(ctx context.Context, key string, value T) {
	if key == "" || s.client == nil {
		return
	}

	raw, err := sonic.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache encode failed", "key", s.prefix+key, "error", err)
		return
	}
	if err := s.client.Set(ctx, s.prefix+key, raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis cache set failed", "key", s.prefix+key, "error", err)
	}
}

// GetOrLoad reads through redis with the same single-flight and keep rules as
// Store.GetOrLoad. Redis failures degrade to a load.
func (s *RedisStore[T]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (T, error), keep func(T) bool) (T, error) {
	return getOrLoad(ctx, &s.flight, key, s.Get, s.Set, loader, keep)
}
