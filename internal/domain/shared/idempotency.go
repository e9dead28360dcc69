package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which event IDs a consumer has already handled,
// so redelivered events are dropped instead of applied twice.
type IdempotencyStore interface {
	// MarkProcessed records an event ID with a TTL. It reports true when the
	// ID was new, false when the event was seen before.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether an event ID has been recorded.
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	Close() error
}

// IdempotencyConfig controls duplicate suppression for event handlers.
type IdempotencyConfig struct {
	// TTL bounds how long a processed event ID is remembered. Past it, a
	// redelivery of the same event would be handled again.
	TTL time.Duration

	Enabled bool
}

func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
