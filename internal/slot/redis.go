package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the Redis slot backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix namespaces slot keys (e.g., "etalase:"). Optional.
	Prefix string
}

// RedisOpener stores each slot as one Redis string value. Suitable when the
// cart must survive the host process and be reachable from more than one
// device session.
type RedisOpener struct {
	client *redis.Client
	prefix string
}

// NewRedisOpener creates a Redis slot backend.
func NewRedisOpener(cfg RedisConfig) (*RedisOpener, error) {
	if cfg.Addr == "" {
		return nil, ErrRedisAddrRequired
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisOpener{client: client, prefix: cfg.Prefix}, nil
}

// NewRedisOpenerWithClient wraps an existing client. Used by tests with a
// mock client.
func NewRedisOpenerWithClient(client *redis.Client, prefix string) *RedisOpener {
	return &RedisOpener{client: client, prefix: prefix}
}

// Open returns a slot backed by the key <prefix><name>.
func (o *RedisOpener) Open(name string) (Slot, error) {
	return &redisSlot{client: o.client, key: o.prefix + name}, nil
}

// Close releases the underlying client connection.
func (o *RedisOpener) Close() error {
	return o.client.Close()
}

type redisSlot struct {
	client *redis.Client
	key    string
}

func (s *redisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to get key %s from redis: %w", s.key, err)
	}
	return data, nil
}

func (s *redisSlot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", s.key, err)
	}
	return nil
}

func (s *redisSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", s.key, err)
	}
	return nil
}
