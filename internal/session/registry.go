package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/api/metrics"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/ports"
	"github.com/99minutos/domain-console/internal/infrastructure/tokenstore"
)

type entry struct {
	sc       *Context
	lastSeen time.Time
}

// Registry keeps one Context per signed-in browser session id and drops
// contexts that stay idle longer than the configured TTL. Dropping a context
// only discards its cached config; stored credentials stay in the backend.
type Registry struct {
	backend  ports.TokenStore
	settings Settings
	idle     time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry(backend ports.TokenStore, settings Settings, idle time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		backend:  backend,
		settings: settings,
		idle:     idle,
		log:      log,
		now:      time.Now,
		entries:  make(map[string]*entry),
	}
}

// Acquire returns the Context for id, creating it on first use.
func (r *Registry) Acquire(id string) *Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.entries[id]; ok {
		e.lastSeen = now
		return e.sc
	}
	scope := tokenstore.ScopeID(id)
	sc := New(scope, tokenstore.Scoped(r.backend, scope), r.settings, r.log)
	r.entries[id] = &entry{sc: sc, lastSeen: now}
	metrics.ActiveBrowserSessions.Set(float64(len(r.entries)))
	return sc
}

// Resolve returns the Context for id. It is held only when id is already known
// or its scope stores an access token. Otherwise the returned Context is
// detached and the registry does not grow.
func (r *Registry) Resolve(ctx context.Context, id string) *Context {
	r.mu.Lock()
	if e, ok := r.entries[id]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.sc
	}
	r.mu.Unlock()

	scope := tokenstore.ScopeID(id)
	store := tokenstore.Scoped(r.backend, scope)
	token, ok, err := store.Get(ctx, domain.KeyAccessToken)
	if err != nil {
		r.log.Warn().Err(err).Str("session", scope).Msg("token store lookup failed")
	}
	if err != nil || !ok || token == "" {
		return New(scope, store, r.settings, r.log)
	}
	return r.Acquire(id)
}

// Retire drops the Context for id and removes the credentials stored under
// its scope, so the id cannot be used again.
func (r *Registry) Retire(ctx context.Context, id string) {
	r.Forget(id)
	store := tokenstore.Scoped(r.backend, tokenstore.ScopeID(id))
	for _, key := range []string{domain.KeyAccessToken, domain.KeyTokenExpiresAt, domain.KeyUserRoles} {
		if err := store.Remove(ctx, key); err != nil {
			r.log.Warn().Err(err).Str("key", key).Msg("failed to clear retired session")
		}
	}
}

// Forget drops the Context for id.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	metrics.ActiveBrowserSessions.Set(float64(len(r.entries)))
}

// Len is the number of held contexts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts idle contexts and returns how many were dropped.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	evicted := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			evicted++
		}
	}
	metrics.ActiveBrowserSessions.Set(float64(len(r.entries)))
	return evicted
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.idle <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug().Int("evicted", n).Int("active", r.Len()).Msg("idle sessions evicted")
			}
		}
	}
}
