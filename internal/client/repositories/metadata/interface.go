// Package metadata stores small named values (session tokens, the key
// derivation salt, the cached user) in the local SQLite database.
package metadata

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// UpdatedAt returns the zero time when key is absent.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
