// Package ephemeral holds short-lived per-visitor state: guest job lists,
// guest profiles and one-shot flags. Nothing stored here is durable.
package ephemeral

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("ephemeral: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Take returns the value and removes the key in one step.
	Take(ctx context.Context, key string) ([]byte, error)
}
