// Package slot implements the persisted single-value slot contract: a named
// location holding one JSON payload, accessed only as read-modify-write.
// Backends cover in-process memory, the local filesystem, and Redis.
package slot

import (
	"context"

	"github.com/seruni/etalase/internal"
)

// Slot is a named location holding a single serialized value.
// Implementations rewrite the whole value on every Write; there are no
// partial writes.
type Slot interface {
	// Read returns the slot's current value. A slot that has never been
	// written (or was cleared) returns ErrEmpty.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the slot's value wholesale.
	Write(ctx context.Context, data []byte) error

	// Clear empties the slot. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}

// Opener creates named slots against one configured backend. The cart and
// checkout slots of a single deployment share an Opener.
type Opener interface {
	Open(name string) (Slot, error)
}

// NewOpener creates an Opener based on configuration.
// Returns the memory backend for "memory", the filesystem backend for
// "local" (and by default), and the Redis backend for "redis".
func NewOpener(cfg internal.SlotConfig) (Opener, error) {
	switch cfg.Provider {
	case "memory":
		return NewMemoryOpener(), nil
	case "local", "":
		return NewLocalOpener(cfg.LocalPath)
	case "redis":
		return NewRedisOpener(RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
