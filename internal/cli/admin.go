package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/service"
)

type adminView struct {
	Roles        []string               `json:"roles"`
	StoredRoles  []string               `json:"stored_roles"`
	Capabilities map[string]bool        `json:"capabilities"`
	RoleCheck    *service.RoleCheck     `json:"role_check,omitempty"`
	Claims       map[string]any         `json:"claims,omitempty"`
	ClaimsError  string                 `json:"claims_error,omitempty"`
	Config       *domain.ConfigDocument `json:"config"`
	ConfigError  string                 `json:"config_error,omitempty"`
}

func (a *app) adminCommand() *cobra.Command {
	var check []string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Show the session as the console sees it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.guard(ctx, domain.AdminRouteName, domain.AdminPath); err != nil {
				return err
			}
			stored, err := service.StoredRoles(ctx, a.session.Store)
			if err != nil {
				return err
			}
			view := adminView{StoredRoles: stored}
			if view.Config, err = a.session.EnsureConfig(ctx); err != nil {
				view.ConfigError = err.Error()
			}
			view.Roles = a.session.Roles.Roles(ctx)
			view.Capabilities = a.session.Roles.RouteAccess(ctx, a.routes(), a.session.Auth.IsAuthenticated(ctx))
			if len(check) > 0 {
				rc := a.session.Roles.Check(ctx, check...)
				view.RoleCheck = &rc
			}

			claims, err := a.session.Auth.Claims(ctx)
			switch {
			case err == nil:
				view.Claims = claims
			case !errors.Is(err, domain.ErrNotAuthenticated):
				view.ClaimsError = err.Error()
			}
			return a.print(view)
		},
	}
	cmd.Flags().StringSliceVar(&check, "check", nil, "role to check against the effective roles (repeatable)")
	return cmd
}
