package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/domain-console/internal/apiclient"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/service"
)

type AdminHandler struct {
	routes []domain.RouteMeta
}

func NewAdminHandler(routes []domain.RouteMeta) *AdminHandler {
	return &AdminHandler{routes: routes}
}

type adminResponse struct {
	Roles         []string               `json:"roles"`
	StoredRoles   []string               `json:"stored_roles"`
	Capabilities  map[string]bool        `json:"capabilities"`
	RoleCheck     *service.RoleCheck     `json:"role_check,omitempty"`
	Claims        map[string]any         `json:"claims,omitempty"`
	ClaimsError   string                 `json:"claims_error,omitempty"`
	Config        *domain.ConfigDocument `json:"config"`
	ConfigLoading bool                   `json:"config_loading"`
	ConfigError   string                 `json:"config_error,omitempty"`
}

// Admin shows the session as the console sees it. Each role query parameter
// is checked against the effective roles.
//
// @Summary      Admin view
// @Tags         admin
// @Produce      json
// @Param        role  query     []string  false  "Roles to check"  collectionFormat(multi)
// @Success      200   {object}  adminResponse
// @Failure      302
// @Router       /admin [get]
func (h *AdminHandler) Admin(c echo.Context) error {
	sc, err := sessionOf(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	stored, err := service.StoredRoles(ctx, sc.Store)
	if err != nil {
		return err
	}
	doc, cfgErr := sc.EnsureConfig(ctx)
	if apiclient.IsUnauthorized(apiclient.StatusOf(cfgErr)) {
		return cfgErr
	}

	resp := adminResponse{
		Roles:         sc.Roles.Roles(ctx),
		StoredRoles:   stored,
		Capabilities:  sc.Roles.RouteAccess(ctx, h.routes, sc.Auth.IsAuthenticated(ctx)),
		Config:        doc,
		ConfigLoading: sc.Config.Loading(),
	}
	if roles := c.QueryParams()["role"]; len(roles) > 0 {
		check := sc.Roles.Check(ctx, roles...)
		resp.RoleCheck = &check
	}
	if cfgErr != nil {
		resp.ConfigError = cfgErr.Error()
	}
	claims, err := sc.Auth.Claims(ctx)
	switch {
	case err == nil:
		resp.Claims = claims
	case !errors.Is(err, domain.ErrNotAuthenticated):
		resp.ClaimsError = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
