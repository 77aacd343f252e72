package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/99minutos/domain-console/internal/apiclient"
	"github.com/99minutos/domain-console/internal/core/domain"
)

const statusEnumerator = "status"

func (a *app) listCommand() *cobra.Command {
	var params domain.ListParams
	cmd := &cobra.Command{
		Use:   "list <domain>",
		Short: "List one page of records",
		Example: `  consolectl list profiles --name acme --limit 20
  consolectl list events --after-id 65f0c --order desc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			path := spec.ListPath()
			if q := params.Encode(); q != "" {
				path += "?" + q
			}
			ctx = apiclient.WithCurrentPath(ctx, path)
			if err := a.guard(ctx, spec.ListRouteName(), path); err != nil {
				return err
			}
			page, err := a.session.Client.Records(spec).List(ctx, &params)
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	f := cmd.Flags()
	f.StringVar(&params.Name, "name", "", "name filter")
	f.StringVar(&params.AfterID, "after-id", "", "cursor from a previous page")
	f.IntVar(&params.Limit, "limit", 0, "page size")
	f.StringVar(&params.SortBy, "sort-by", "", "sort field")
	f.StringVar(&params.Order, "order", "", "asc or desc")
	return cmd
}

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			path := spec.ListPath() + "/" + url.PathEscape(args[1])
			ctx := apiclient.WithCurrentPath(cmd.Context(), path)
			if err := a.guard(ctx, spec.DetailRouteName(), path); err != nil {
				return err
			}
			rec, err := a.session.Client.Records(spec).Get(ctx, args[1])
			if err != nil {
				return err
			}
			return a.print(rec)
		},
	}
}

func (a *app) createCommand() *cobra.Command {
	var in domain.RecordInput
	cmd := &cobra.Command{
		Use:   "create <domain>",
		Short: "Create a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			if !spec.Can(domain.CapCreate) {
				return fmt.Errorf("create %s: %w", spec.Name, domain.ErrOperationNotSupported)
			}
			path := spec.NewPath()
			ctx := apiclient.WithCurrentPath(cmd.Context(), path)
			if err := a.guard(ctx, spec.NewRouteName(), path); err != nil {
				return err
			}
			if err := a.checkStatus(cmd, spec, in.Status); err != nil {
				return err
			}
			ref, err := a.session.Client.Records(spec).Create(ctx, in)
			if err != nil {
				return err
			}
			return a.print(ref)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "record name")
	f.StringVar(&in.Description, "description", "", "record description")
	f.StringVar(&in.Status, "status", "", "record status")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) updateCommand() *cobra.Command {
	var name, description, status string
	cmd := &cobra.Command{
		Use:   "update <domain> <id>",
		Short: "Change fields of a record",
		Long:  "Change fields of a record. Only the flags given are sent.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			path := spec.ListPath() + "/" + url.PathEscape(args[1])
			ctx := apiclient.WithCurrentPath(cmd.Context(), path)
			if err := a.guard(ctx, spec.DetailRouteName(), path); err != nil {
				return err
			}

			var patch domain.RecordUpdate
			f := cmd.Flags()
			if f.Changed("name") {
				patch.Name = &name
			}
			if f.Changed("description") {
				patch.Description = &description
			}
			if f.Changed("status") {
				patch.Status = &status
				if spec.Can(domain.CapUpdate) {
					if err := a.checkStatus(cmd, spec, status); err != nil {
						return err
					}
				}
			}
			rec, err := a.session.Client.Records(spec).Update(ctx, args[1], patch)
			if err != nil {
				return err
			}
			return a.print(rec)
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "new name")
	f.StringVar(&description, "description", "", "new description")
	f.StringVar(&status, "status", "", "new status")
	return cmd
}

// checkStatus validates status against the domain's status enumerator.
func (a *app) checkStatus(cmd *cobra.Command, spec domain.DomainSpec, status string) error {
	if status == "" {
		return nil
	}
	if _, err := a.session.EnsureConfig(cmd.Context()); err != nil {
		return err
	}
	return a.session.Config.CheckOption(spec.Collection, statusEnumerator, status)
}
