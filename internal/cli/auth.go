package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func (a *app) loginCommand() *cobra.Command {
	var subject string
	var roles []string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in through the backend's dev login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.session.Auth.Login(cmd.Context(), subject, roles)
			if err != nil {
				return err
			}
			return a.print(map[string]any{
				"subject":    res.Subject,
				"roles":      res.Roles,
				"expires_at": res.ExpiresAt,
				"store":      a.store.Path(),
			})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "subject to log in as")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role to request (repeatable)")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			return a.print(map[string]any{"authenticated": false})
		},
	}
}

type statusView struct {
	Authenticated bool     `json:"authenticated"`
	ExpiresAt     string   `json:"expires_at,omitempty"`
	ExpiresIn     string   `json:"expires_in,omitempty"`
	Roles         []string `json:"roles"`
	Store         string   `json:"store"`
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := a.session.Auth.Session(ctx)
			if err != nil {
				return err
			}
			view := statusView{
				Authenticated: a.session.Auth.IsAuthenticated(ctx),
				ExpiresAt:     s.ExpiresAt,
				Roles:         s.Roles,
				Store:         a.store.Path(),
			}
			if view.Roles == nil {
				view.Roles = []string{}
			}
			if exp, ok := s.Expiry(); ok && view.Authenticated {
				view.ExpiresIn = time.Until(exp).Round(time.Second).String()
			}
			return a.print(view)
		},
	}
}
