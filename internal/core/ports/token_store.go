package ports

import "context"

// TokenStore is the per-user key-value storage that holds the session.
// Implementations are plain read/write; they apply no session logic.
type TokenStore interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove is a no-op for absent keys.
	Remove(ctx context.Context, key string) error
}
