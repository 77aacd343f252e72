package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/api/metrics"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/ports"
)

// Outcome is the result of a guard evaluation.
type Outcome string

const (
	OutcomeAllowed   Outcome = "allowed"
	OutcomeLogin     Outcome = "login"
	OutcomeForbidden Outcome = "forbidden"
)

// Decision tells the caller whether to proceed or where to go instead.
type Decision struct {
	Outcome Outcome
	// Location is set for redirects.
	Location string
}

// Allowed reports whether navigation proceeds.
func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllowed }

// Authenticator reports whether a session is logged in.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Guard gates navigation: first on authentication, then on the persisted
// role list.
type Guard struct {
	auth         Authenticator
	store        ports.TokenStore
	defaultRoute string
	log          zerolog.Logger
}

func NewGuard(auth Authenticator, store ports.TokenStore, defaultRoute string, log zerolog.Logger) *Guard {
	return &Guard{auth: auth, store: store, defaultRoute: defaultRoute, log: log}
}

// Evaluate decides a navigation attempt to route. fullPath is the requested
// path including its query and becomes the login return target.
func (g *Guard) Evaluate(ctx context.Context, route domain.RouteMeta, fullPath string) Decision {
	d := g.evaluate(ctx, route, fullPath)
	metrics.GuardDecisionsTotal.WithLabelValues(string(d.Outcome)).Inc()
	if !d.Allowed() {
		g.log.Debug().
			Str("route", route.Name).
			Str("path", fullPath).
			Str("outcome", string(d.Outcome)).
			Str("location", d.Location).
			Msg("navigation redirected")
	}
	return d
}

func (g *Guard) evaluate(ctx context.Context, route domain.RouteMeta, fullPath string) Decision {
	if route.RequiresAuth && !g.auth.IsAuthenticated(ctx) {
		return Decision{Outcome: OutcomeLogin, Location: domain.LoginRedirect(fullPath)}
	}
	if route.RequiresRole != "" && !HasStoredRole(ctx, g.store, route.RequiresRole) {
		return Decision{Outcome: OutcomeForbidden, Location: g.defaultRoute}
	}
	return Decision{Outcome: OutcomeAllowed}
}
