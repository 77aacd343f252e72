package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/core/domain"
)

type staticAuth bool

func (a staticAuth) IsAuthenticated(context.Context) bool { return bool(a) }

func routeByName(t *testing.T, name string) domain.RouteMeta {
	t.Helper()
	for _, r := range domain.Routes(domain.DefaultCatalog(), "admin") {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("route %s not registered", name)
	return domain.RouteMeta{}
}

func TestGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	g := NewGuard(staticAuth(false), newMapStore(), "/profiles", zerolog.Nop())

	d := g.Evaluate(context.Background(), routeByName(t, "ProfileEdit"), "/profiles/42?tab=audit")
	if d.Outcome != OutcomeLogin {
		t.Fatalf("expected login outcome, got %s", d.Outcome)
	}
	if d.Location != "/login?redirect=%2Fprofiles%2F42%3Ftab%3Daudit" {
		t.Fatalf("unexpected location %q", d.Location)
	}
}

func TestGuard_AuthGateRunsFirst(t *testing.T) {
	store := newMapStore(domain.KeyUserRoles, `[]`)
	g := NewGuard(staticAuth(false), store, "/profiles", zerolog.Nop())

	d := g.Evaluate(context.Background(), routeByName(t, "Admin"), "/admin")
	if d.Outcome != OutcomeLogin || d.Location != "/login?redirect=%2Fadmin" {
		t.Fatalf("expected login redirect, got %+v", d)
	}
}

func TestGuard_MissingRoleRedirectsToDefaultRoute(t *testing.T) {
	store := newMapStore(domain.KeyUserRoles, `["developer"]`)
	g := NewGuard(staticAuth(true), store, "/profiles", zerolog.Nop())

	d := g.Evaluate(context.Background(), routeByName(t, "Admin"), "/admin")
	if d.Outcome != OutcomeForbidden {
		t.Fatalf("expected forbidden outcome, got %s", d.Outcome)
	}
	if d.Location != "/profiles" {
		t.Fatalf("expected default route, got %q", d.Location)
	}
}

func TestGuard_Allowed(t *testing.T) {
	store := newMapStore(domain.KeyUserRoles, `["admin"]`)
	g := NewGuard(staticAuth(true), store, "/profiles", zerolog.Nop())

	for _, name := range []string{"Admin", "Profiles", "EventView", "IdentityView"} {
		if d := g.Evaluate(context.Background(), routeByName(t, name), "/x"); !d.Allowed() {
			t.Fatalf("%s: expected allowed, got %+v", name, d)
		}
	}
}

func TestGuard_PublicRoute(t *testing.T) {
	g := NewGuard(staticAuth(false), newMapStore(), "/profiles", zerolog.Nop())
	if d := g.Evaluate(context.Background(), routeByName(t, "Login"), "/login"); !d.Allowed() {
		t.Fatalf("login route must be public, got %+v", d)
	}
}
