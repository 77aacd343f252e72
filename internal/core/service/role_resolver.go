package service

import (
	"context"
	"slices"

	"github.com/99minutos/domain-console/internal/core/domain"
)

// RoleSource supplies the roles granted at login.
type RoleSource interface {
	Roles(ctx context.Context) []string
}

// DocumentSource supplies the cached configuration document.
type DocumentSource interface {
	Document() *domain.ConfigDocument
}

// RoleResolver computes the effective role list of a session.
type RoleResolver struct {
	auth   RoleSource
	config DocumentSource
}

func NewRoleResolver(auth RoleSource, config DocumentSource) *RoleResolver {
	return &RoleResolver{auth: auth, config: config}
}

// Roles prefers the login roles and falls back to the roles echoed in the
// config document's token.
func (r *RoleResolver) Roles(ctx context.Context) []string {
	if r.auth != nil {
		if roles := r.auth.Roles(ctx); len(roles) > 0 {
			return roles
		}
	}
	if r.config != nil {
		if roles := r.config.Document().TokenRoles(); len(roles) > 0 {
			return roles
		}
	}
	return []string{}
}

// HasRole is an exact, case-sensitive membership test.
func (r *RoleResolver) HasRole(ctx context.Context, role string) bool {
	return slices.Contains(r.Roles(ctx), role)
}

// HasAnyRole reports whether any of roles is held.
func (r *RoleResolver) HasAnyRole(ctx context.Context, roles ...string) bool {
	effective := r.Roles(ctx)
	for _, role := range roles {
		if slices.Contains(effective, role) {
			return true
		}
	}
	return false
}

// RouteAccess maps each route name to whether the effective roles admit it.
// Routes with no role requirement only need authenticated.
func (r *RoleResolver) RouteAccess(ctx context.Context, routes []domain.RouteMeta, authenticated bool) map[string]bool {
	access := make(map[string]bool, len(routes))
	for _, route := range routes {
		switch {
		case route.RequiresRole != "":
			access[route.Name] = authenticated && r.HasRole(ctx, route.RequiresRole)
		case route.RequiresAuth:
			access[route.Name] = authenticated
		default:
			access[route.Name] = true
		}
	}
	return access
}

// RoleCheck reports which of a set of roles are held.
type RoleCheck struct {
	Roles map[string]bool `json:"roles"`
	Any   bool            `json:"any"`
}

func (r *RoleResolver) Check(ctx context.Context, roles ...string) RoleCheck {
	check := RoleCheck{Roles: make(map[string]bool, len(roles)), Any: r.HasAnyRole(ctx, roles...)}
	for _, role := range roles {
		check.Roles[role] = r.HasRole(ctx, role)
	}
	return check
}
