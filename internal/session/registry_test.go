package session

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/infrastructure/tokenstore"
)

func TestRegistry_AcquireReusesContext(t *testing.T) {
	r := NewRegistry(tokenstore.NewMemory(tokenstore.Config{}), Settings{BaseURL: "http://backend"}, time.Minute, zerolog.Nop())

	a := r.Acquire("cookie-a")
	if r.Acquire("cookie-a") != a {
		t.Fatalf("expected the same context for the same id")
	}
	if r.Acquire("cookie-b") == a {
		t.Fatalf("expected a distinct context for another id")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 contexts, got %d", r.Len())
	}
	if a.ID != tokenstore.ScopeID("cookie-a") {
		t.Fatalf("context id must be the derived scope, got %s", a.ID)
	}
}

func TestRegistry_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	backend := tokenstore.NewMemory(tokenstore.Config{})
	r := NewRegistry(backend, Settings{}, 0, zerolog.Nop())

	a, b := r.Acquire("a"), r.Acquire("b")
	if err := a.Store.Set(ctx, domain.KeyAccessToken, "tok-a"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := b.Store.Get(ctx, domain.KeyAccessToken); ok {
		t.Fatalf("session b must not see session a's token")
	}
}

func TestRegistry_SweepEvictsIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry(tokenstore.NewMemory(tokenstore.Config{}), Settings{}, 10*time.Minute, zerolog.Nop())
	r.now = func() time.Time { return now }

	old := r.Acquire("old")
	now = now.Add(8 * time.Minute)
	r.Acquire("fresh")
	now = now.Add(5 * time.Minute)

	if n := r.Sweep(); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 remaining, got %d", r.Len())
	}
	if r.Acquire("old") == old {
		t.Fatalf("expected a new context after eviction")
	}
}

func TestRegistry_ZeroIdleNeverSweeps(t *testing.T) {
	r := NewRegistry(tokenstore.NewMemory(tokenstore.Config{}), Settings{}, 0, zerolog.Nop())
	r.Acquire("a")
	if r.Sweep() != 0 || r.Len() != 1 {
		t.Fatalf("zero idle TTL keeps contexts")
	}
	r.Forget("a")
	if r.Len() != 0 {
		t.Fatalf("Forget must drop the context")
	}
}

func TestRegistry_ResolveHoldsOnlyStoredCredentials(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(tokenstore.NewMemory(tokenstore.Config{}), Settings{}, time.Minute, zerolog.Nop())

	anon := r.Resolve(ctx, "anon")
	if r.Len() != 0 {
		t.Fatalf("anonymous context must not be held, got %d", r.Len())
	}
	if anon.ID != tokenstore.ScopeID("anon") {
		t.Fatalf("detached context must still use the scope, got %s", anon.ID)
	}
	if err := anon.Store.Set(ctx, domain.KeyAccessToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	held := r.Resolve(ctx, "anon")
	if r.Len() != 1 {
		t.Fatalf("context with a stored token must be held, got %d", r.Len())
	}
	if r.Resolve(ctx, "anon") != held {
		t.Fatalf("expected the held context on the next resolve")
	}
}

func TestRegistry_RetireClearsCredentials(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(tokenstore.NewMemory(tokenstore.Config{}), Settings{}, 0, zerolog.Nop())

	sc := r.Acquire("old")
	for _, key := range []string{domain.KeyAccessToken, domain.KeyTokenExpiresAt, domain.KeyUserRoles} {
		if err := sc.Store.Set(ctx, key, "v"); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	r.Retire(ctx, "old")
	if r.Len() != 0 {
		t.Fatalf("Retire must drop the context")
	}
	for _, key := range []string{domain.KeyAccessToken, domain.KeyTokenExpiresAt, domain.KeyUserRoles} {
		if _, ok, _ := sc.Store.Get(ctx, key); ok {
			t.Fatalf("expected %s removed", key)
		}
	}
	if r.Resolve(ctx, "old"); r.Len() != 0 {
		t.Fatalf("a retired id must resolve to a detached context")
	}
}
