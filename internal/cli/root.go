// Package cli implements consolectl, the terminal client of the domain
// console. Its session lives in a YAML file under the user config directory.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/ports"
	"github.com/99minutos/domain-console/internal/core/service"
	"github.com/99minutos/domain-console/internal/infrastructure/tokenstore"
	"github.com/99minutos/domain-console/internal/pkg/config"
	"github.com/99minutos/domain-console/internal/session"
)

// Options are the process-level inputs of the command tree.
type Options struct {
	Out io.Writer
	// Lookuper resolves CONSOLE_* and TOKEN_STORE_FILE. Defaults to the
	// process environment.
	Lookuper   envconfig.Lookuper
	HTTPClient *http.Client
	Log        zerolog.Logger
}

type environment struct {
	API        config.APIConfig
	TokenStore config.TokenStoreConfig
}

type app struct {
	opts    Options
	catalog domain.Catalog

	apiURL    string
	storePath string
	output    string

	env     environment
	store   *tokenstore.FileStore
	session *session.Context
}

// NewRootCommand builds the consolectl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Lookuper == nil {
		opts.Lookuper = envconfig.OsLookuper()
	}
	a := &app{opts: opts, catalog: domain.DefaultCatalog()}

	root := &cobra.Command{
		Use:           "consolectl",
		Short:         "Browse and edit domain records from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.SetOut(opts.Out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "backend base URL (default $CONSOLE_API_URL)")
	flags.StringVar(&a.storePath, "store", "", "session file (default $TOKEN_STORE_FILE or the user config dir)")
	flags.StringVarP(&a.output, "output", "o", "json", "output format: json or yaml")

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.statusCommand(),
		a.configCommand(),
		a.dropdownCommand(),
		a.listCommand(),
		a.getCommand(),
		a.createCommand(),
		a.updateCommand(),
		a.adminCommand(),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	if a.output != "json" && a.output != "yaml" {
		return fmt.Errorf("unsupported output format %q", a.output)
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &a.env, Lookuper: a.opts.Lookuper}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if a.apiURL != "" {
		a.env.API.BaseURL = a.apiURL
	}

	path := a.storePath
	if path == "" {
		path = a.env.TokenStore.FilePath
	}
	if path == "" {
		var err error
		if path, err = tokenstore.DefaultFilePath(); err != nil {
			return err
		}
	}
	store, err := tokenstore.NewFile(path)
	if err != nil {
		return err
	}
	a.store = store

	defaultRoute := a.env.API.DefaultRoute
	if defaultRoute == "" {
		defaultRoute = a.catalog.DefaultRoute()
	}
	a.session = session.New("cli", store, session.Settings{
		BaseURL:      a.env.API.BaseURL,
		Prefix:       a.env.API.Prefix,
		LoginPath:    a.env.API.LoginPath,
		DefaultRoute: defaultRoute,
		HTTPClient:   a.opts.HTTPClient,
		Navigator:    a.navigator(),
	}, a.opts.Log)
	return nil
}

// navigator reports a session ended by the backend. There is no page to
// move to, so the user is told to log in again.
func (a *app) navigator() ports.Navigator {
	return ports.NavigatorFunc(func(_ context.Context, location string) {
		a.opts.Log.Warn().Str("location", location).Msg("session expired, run `consolectl login`")
	})
}

// lookup resolves a domain argument such as "profile" or "profiles".
func (a *app) lookup(name string) (domain.DomainSpec, error) {
	spec, ok := a.catalog.Lookup(name)
	if !ok {
		return domain.DomainSpec{}, fmt.Errorf("%w: %s", domain.ErrUnknownDomain, name)
	}
	return spec, nil
}

func (a *app) routes() []domain.RouteMeta {
	return domain.Routes(a.catalog, a.env.API.AdminRole)
}

// guard runs the route guard for the command's route equivalent.
func (a *app) guard(ctx context.Context, routeName, fullPath string) error {
	var route domain.RouteMeta
	for _, r := range a.routes() {
		if r.Name == routeName {
			route = r
			break
		}
	}
	d := a.session.Guard.Evaluate(ctx, route, fullPath)
	switch {
	case d.Allowed():
		return nil
	case d.Outcome == service.OutcomeLogin:
		return fmt.Errorf("%w: run `consolectl login` first", domain.ErrNotAuthenticated)
	default:
		return fmt.Errorf("%w: %s requires another role", domain.ErrForbidden, route.Path)
	}
}
