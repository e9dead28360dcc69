package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyKeyPrefix = "event:idempotency:"

// RedisIdempotencyStore tracks processed event IDs in Redis so that every
// instance of the backend shares the same dedupe state.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisIdempotencyStore connects to Redis and verifies the connection
// with a ping before returning the store.
func NewRedisIdempotencyStore(cfg RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: defaultIdempotencyKeyPrefix,
	}, nil
}

// NewRedisIdempotencyStoreWithClient wraps an existing client, for callers
// that share one Redis connection across components.
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultIdempotencyKeyPrefix
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkProcessed records the event ID via SETNX, so the write and the
// duplicate check are a single atomic operation. A false return means
// another instance already processed the event.
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetNX(ctx, s.keyPrefix+eventID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark event as processed: %w", err)
	}

	return result, nil
}

func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.keyPrefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if event is processed: %w", err)
	}

	return exists > 0, nil
}

func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

// GetClient exposes the underlying client for health checks.
func (s *RedisIdempotencyStore) GetClient() *redis.Client {
	return s.client
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
