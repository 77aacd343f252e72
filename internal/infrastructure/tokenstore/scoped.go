package tokenstore

import (
	"context"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/99minutos/domain-console/internal/core/ports"
)

type scoped struct {
	inner  ports.TokenStore
	prefix string
}

// Scoped namespaces every key of inner under scope.
func Scoped(inner ports.TokenStore, scope string) ports.TokenStore {
	return &scoped{inner: inner, prefix: scope + ":"}
}

// ScopeID derives a stable storage scope from a session cookie value so that
// the cookie itself is never written to the backend.
func ScopeID(cookie string) string {
	sum := blake2b.Sum256([]byte(cookie))
	return hex.EncodeToString(sum[:16])
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}
