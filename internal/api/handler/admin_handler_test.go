package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/domain-console/internal/api/middleware"
	"github.com/99minutos/domain-console/internal/apiclient"
	"github.com/99minutos/domain-console/internal/core/domain"
)

var testRoutes = domain.Routes(domain.DefaultCatalog(), "admin")

func TestAdminHandler_Admin(t *testing.T) {
	h := newHarness(t)
	handler := NewAdminHandler(testRoutes)

	rec, err := h.call(handler.Admin, httptest.NewRequest(http.MethodGet, "/admin", nil), h.login(t, "admin", "developer"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	stored := resp["stored_roles"].([]any)
	if len(stored) != 2 || stored[0] != "admin" {
		t.Fatalf("unexpected stored roles %v", stored)
	}
	if resp["config"] == nil || resp["config_loading"] != false {
		t.Fatalf("expected a loaded config, got %v", resp)
	}
	caps := resp["capabilities"].(map[string]any)
	if caps["Admin"] != true || caps["Profiles"] != true || caps["Login"] != true {
		t.Fatalf("unexpected capabilities %v", caps)
	}
	if _, ok := resp["role_check"]; ok {
		t.Fatalf("role_check is only reported when roles are asked for")
	}
	// The fake backend issues an opaque token, so claims cannot be decoded.
	if resp["claims_error"] == nil {
		t.Fatalf("expected a claims error for an opaque token, got %v", resp)
	}
}

func TestAdminHandler_RoleCheck(t *testing.T) {
	h := newHarness(t)
	handler := NewAdminHandler(testRoutes)

	rec, err := h.call(handler.Admin, httptest.NewRequest(http.MethodGet, "/admin?role=auditor&role=developer", nil), h.login(t, "developer"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	check := resp["role_check"].(map[string]any)
	roles := check["roles"].(map[string]any)
	if check["any"] != true || roles["developer"] != true || roles["auditor"] != false {
		t.Fatalf("unexpected role check %v", check)
	}
	if caps := resp["capabilities"].(map[string]any); caps["Admin"] != false || caps["Profiles"] != true {
		t.Fatalf("a developer may browse but not administer, got %v", caps)
	}

	rec, _ = h.call(handler.Admin, httptest.NewRequest(http.MethodGet, "/admin?role=auditor", nil), h.login(t, "developer"))
	if check := decode(t, rec)["role_check"].(map[string]any); check["any"] != false {
		t.Fatalf("expected no matching role, got %v", check)
	}
}

func TestAdminHandler_Anonymous(t *testing.T) {
	h := newHarness(t)
	handler := NewAdminHandler(testRoutes)

	rec, err := h.call(handler.Admin, httptest.NewRequest(http.MethodGet, "/admin", nil), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if resp["config"] != nil {
		t.Fatalf("anonymous sessions load no config, got %v", resp["config"])
	}
	if roles := resp["roles"].([]any); len(roles) != 0 {
		t.Fatalf("expected no roles, got %v", roles)
	}
	if _, ok := resp["claims"]; ok {
		t.Fatalf("expected no claims")
	}
	if caps := resp["capabilities"].(map[string]any); caps["Login"] != true || caps["Profiles"] != false || caps["Admin"] != false {
		t.Fatalf("anonymous sessions only reach login, got %v", caps)
	}
}

func TestAdminHandler_RevokedSession(t *testing.T) {
	h := newHarness(t)
	handler := NewAdminHandler(testRoutes)
	cookies := h.login(t, "admin")

	var id string
	_, _ = h.call(func(c echo.Context) error {
		id = middleware.SessionID(c)
		return nil
	}, httptest.NewRequest(http.MethodGet, "/", nil), cookies)

	// A fresh context has no cached document and has to reload it.
	h.registry.Forget(id)
	h.api.revoke()

	var pending bool
	_, err := h.call(func(c echo.Context) error {
		err := handler.Admin(c)
		_, pending = middleware.PendingNavigation(c.Request().Context())
		return err
	}, httptest.NewRequest(http.MethodGet, "/admin", nil), cookies)
	if apiclient.StatusOf(err) != http.StatusUnauthorized || !pending {
		t.Fatalf("expected 401 with a pending navigation, got %v %v", err, pending)
	}
}
