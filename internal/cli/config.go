package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/99minutos/domain-console/internal/core/domain"
)

// requireLogin fails fast for commands that are not routes but still need
// a session.
func (a *app) requireLogin(ctx context.Context) error {
	if !a.session.Auth.IsAuthenticated(ctx) {
		return fmt.Errorf("%w: run `consolectl login` first", domain.ErrNotAuthenticated)
	}
	return nil
}

func (a *app) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Fetch the configuration document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			doc, err := a.session.Config.Load(ctx)
			if err != nil {
				return err
			}
			return a.print(doc)
		},
	}
}

func (a *app) dropdownCommand() *cobra.Command {
	var values bool
	cmd := &cobra.Command{
		Use:   "dropdown <collection> <enumerator>",
		Short: "List the choices of an enumerator",
		Example: `  consolectl dropdown Profile status
  consolectl dropdown Profile status --values`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			if _, err := a.session.EnsureConfig(ctx); err != nil {
				return err
			}
			if values {
				return a.print(a.session.Config.EnumeratorValues(args[0], args[1]))
			}
			return a.print(a.session.Config.DropdownItems(args[0], args[1]))
		},
	}
	cmd.Flags().BoolVar(&values, "values", false, "show values with their descriptions")
	return cmd
}
