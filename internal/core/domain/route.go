package domain

import (
	"net/url"
	"strings"
)

const (
	LoginPath      = "/login"
	LoginRouteName = "Login"
	AdminPath      = "/admin"
	AdminRouteName = "Admin"

	// RedirectParam carries the originally requested path to the login route.
	RedirectParam = "redirect"
)

// RouteMeta is the navigation metadata a guard evaluates.
type RouteMeta struct {
	Name         string
	Path         string
	RequiresAuth bool
	// RequiresRole is empty when any authenticated user may enter.
	RequiresRole string
}

// Routes lists every client-side route for a catalog, in registration order.
func Routes(c Catalog, adminRole string) []RouteMeta {
	routes := []RouteMeta{{Name: LoginRouteName, Path: LoginPath}}
	for _, d := range c {
		routes = append(routes, RouteMeta{Name: d.ListRouteName(), Path: d.ListPath(), RequiresAuth: true})
		if d.Can(CapCreate) {
			routes = append(routes, RouteMeta{Name: d.NewRouteName(), Path: d.NewPath(), RequiresAuth: true})
		}
		routes = append(routes, RouteMeta{Name: d.DetailRouteName(), Path: d.DetailPath(), RequiresAuth: true})
	}
	routes = append(routes, RouteMeta{Name: AdminRouteName, Path: AdminPath, RequiresAuth: true, RequiresRole: adminRole})
	return routes
}

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers escape a query component:
// spaces become %20 rather than '+', and !'()* are left as they are.
func EncodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}

// LoginRedirect builds the login URL that returns to returnTo afterwards.
func LoginRedirect(returnTo string) string {
	return LoginPath + "?" + RedirectParam + "=" + EncodeURIComponent(returnTo)
}

// SafeReturnPath reports whether p is a local absolute path that may be used
// as a post-login redirect target.
func SafeReturnPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
