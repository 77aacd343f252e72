package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/domain-console/internal/api/middleware"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/session"
)

type AuthHandler struct {
	registry     *session.Registry
	cookieName   string
	defaultRoute string
}

func NewAuthHandler(registry *session.Registry, cookieName, defaultRoute string) *AuthHandler {
	return &AuthHandler{registry: registry, cookieName: cookieName, defaultRoute: defaultRoute}
}

type loginRequest struct {
	Subject  string   `json:"subject"  form:"subject"  validate:"omitempty,max=128"`
	Roles    []string `json:"roles"    form:"roles"    validate:"omitempty,dive,required"`
	Redirect string   `json:"redirect" form:"redirect"`
}

type loginPageResponse struct {
	Authenticated bool   `json:"authenticated"`
	Redirect      string `json:"redirect,omitempty"`
}

// LoginPage describes the login view.
//
// @Summary      Login page model
// @Tags         auth
// @Produce      json
// @Param        redirect  query     string  false  "Path to return to after login"
// @Success      200       {object}  loginPageResponse
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	sc, err := sessionOf(c)
	if err != nil {
		return err
	}
	resp := loginPageResponse{Authenticated: sc.Auth.IsAuthenticated(c.Request().Context())}
	if r := c.QueryParam(domain.RedirectParam); domain.SafeReturnPath(r) {
		resp.Redirect = r
	}
	return c.JSON(http.StatusOK, resp)
}

// Login performs a dev login and redirects to the requested path, or the
// default route. A successful login moves the browser to a new session id and
// retires the previous one.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Param        body      body      loginRequest  true   "Optional subject and roles"
// @Param        redirect  query     string        false  "Path to return to after login"
// @Success      303
// @Failure      401       {object}  map[string]string
// @Failure      422       {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if _, err := sessionOf(c); err != nil {
		return err
	}
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	previous := middleware.SessionID(c)
	id := uuid.NewString()
	sc := h.registry.Acquire(id)
	if _, err := sc.Auth.Login(ctx, req.Subject, req.Roles); err != nil {
		h.registry.Forget(id)
		return err
	}
	if err := middleware.RotateBrowserSession(c, h.cookieName, id, sc); err != nil {
		h.registry.Retire(ctx, id)
		return err
	}
	if previous != "" {
		h.registry.Retire(ctx, previous)
	}

	target := req.Redirect
	if target == "" {
		target = c.QueryParam(domain.RedirectParam)
	}
	if !domain.SafeReturnPath(target) || target == domain.LoginPath {
		target = h.defaultRoute
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Logout clears the stored session and ends the browser session.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sc, err := sessionOf(c)
	if err != nil {
		return err
	}
	if err := sc.Auth.Logout(c.Request().Context()); err != nil {
		return err
	}
	h.registry.Forget(middleware.SessionID(c))
	if err := middleware.EndBrowserSession(c, h.cookieName); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, domain.LoginPath)
}
