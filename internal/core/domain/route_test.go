package domain

import "testing"

func TestRoutes_DefaultCatalog(t *testing.T) {
	routes := Routes(DefaultCatalog(), "admin")

	byName := make(map[string]RouteMeta, len(routes))
	for _, r := range routes {
		byName[r.Name] = r
	}

	want := map[string]string{
		"Login":            "/login",
		"Profiles":         "/profiles",
		"ProfileNew":       "/profiles/new",
		"ProfileEdit":      "/profiles/:id",
		"OrganizationEdit": "/organizations/:id",
		"Events":           "/events",
		"EventNew":         "/events/new",
		"EventView":        "/events/:id",
		"Identitys":        "/identitys",
		"IdentityView":     "/identitys/:id",
		"Admin":            "/admin",
	}
	for name, path := range want {
		r, ok := byName[name]
		if !ok {
			t.Fatalf("route %s missing", name)
		}
		if r.Path != path {
			t.Fatalf("route %s path = %s, want %s", name, r.Path, path)
		}
	}
	if _, ok := byName["IdentityNew"]; ok {
		t.Fatalf("consume domains have no create route")
	}
	if byName["Login"].RequiresAuth {
		t.Fatalf("login must be public")
	}
	if byName["Admin"].RequiresRole != "admin" || !byName["Admin"].RequiresAuth {
		t.Fatalf("admin must require auth and role")
	}
}

func TestLoginRedirect(t *testing.T) {
	tests := map[string]string{
		"/controls":               "/login?redirect=%2Fcontrols",
		"/profiles?name=a b":      "/login?redirect=%2Fprofiles%3Fname%3Da%20b",
		"/":                       "/login?redirect=%2F",
		"/profiles/o'brien(1)!*~": "/login?redirect=%2Fprofiles%2Fo'brien(1)!*~",
	}
	for in, want := range tests {
		if got := LoginRedirect(in); got != want {
			t.Errorf("LoginRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"a b":    "a%20b",
		"a+b":    "a%2Bb",
		"!'()*":  "!'()*",
		"-_.~":   "-_.~",
		"%21":    "%2521",
		"/?#&=":  "%2F%3F%23%26%3D",
		"\u00e9": "%C3%A9",
	}
	for in, want := range tests {
		if got := EncodeURIComponent(in); got != want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSafeReturnPath(t *testing.T) {
	ok := []string{"/profiles", "/profiles/1?tab=x", "/"}
	bad := []string{"", "profiles", "//evil.com", "/\\evil.com", "https://evil.com/x"}
	for _, p := range ok {
		if !SafeReturnPath(p) {
			t.Errorf("expected %q to be safe", p)
		}
	}
	for _, p := range bad {
		if SafeReturnPath(p) {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := DefaultCatalog()
	for _, name := range []string{"profile", "profiles", " Profiles "} {
		if d, ok := c.Lookup(name); !ok || d.Name != "profile" {
			t.Fatalf("Lookup(%q) failed", name)
		}
	}
	if _, ok := c.Lookup("shipment"); ok {
		t.Fatalf("unexpected domain")
	}
	if c.DefaultRoute() != "/profiles" {
		t.Fatalf("unexpected default route %s", c.DefaultRoute())
	}
	if (Catalog{}).DefaultRoute() != LoginPath {
		t.Fatalf("empty catalog falls back to login")
	}
}

func TestKind_Capabilities(t *testing.T) {
	if KindControl.Capabilities().String() != "list,get,create,update" {
		t.Fatalf("unexpected control caps %s", KindControl.Capabilities())
	}
	if KindCreate.Capabilities()&CapUpdate != 0 {
		t.Fatalf("create domains cannot update")
	}
	if KindConsume.Capabilities() != CapList|CapGet {
		t.Fatalf("consume domains are read-only")
	}
}
