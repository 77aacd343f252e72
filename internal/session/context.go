// Package session assembles the per-user-agent object graph: a token store
// scope, an API client bound to it and the services built on top.
package session

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/apiclient"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/ports"
	"github.com/99minutos/domain-console/internal/core/service"
)

// Settings are shared by every session context of a process.
type Settings struct {
	BaseURL      string
	Prefix       string
	LoginPath    string
	DefaultRoute string
	HTTPClient   *http.Client
	Navigator    ports.Navigator
}

// Context is the session state of one user agent.
type Context struct {
	ID     string
	Store  ports.TokenStore
	Client *apiclient.Client
	Config *service.ConfigLoader
	Auth   *service.AuthSession
	Roles  *service.RoleResolver
	Guard  *service.Guard
}

// New wires a Context around store.
func New(id string, store ports.TokenStore, s Settings, log zerolog.Logger) *Context {
	log = log.With().Str("session", id).Logger()

	opts := []apiclient.Option{apiclient.WithLogger(log)}
	if s.Prefix != "" {
		opts = append(opts, apiclient.WithPrefix(s.Prefix))
	}
	if s.LoginPath != "" {
		opts = append(opts, apiclient.WithLoginPath(s.LoginPath))
	}
	if s.HTTPClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(s.HTTPClient))
	}
	if s.Navigator != nil {
		opts = append(opts, apiclient.WithNavigator(s.Navigator))
	}
	client := apiclient.New(s.BaseURL, store, opts...)

	config := service.NewConfigLoader(client, log)
	auth := service.NewAuthSession(store, client, config, log)
	return &Context{
		ID:     id,
		Store:  store,
		Client: client,
		Config: config,
		Auth:   auth,
		Roles:  service.NewRoleResolver(auth, config),
		Guard:  service.NewGuard(auth, store, s.DefaultRoute, log),
	}
}

// EnsureConfig returns the cached configuration document, loading it first
// when the session is authenticated and nothing is cached yet. The document
// is never persisted, so a restarted process starts without one.
func (c *Context) EnsureConfig(ctx context.Context) (*domain.ConfigDocument, error) {
	if doc := c.Config.Document(); doc != nil {
		return doc, nil
	}
	if !c.Auth.IsAuthenticated(ctx) {
		return nil, nil
	}
	return c.Config.Load(ctx)
}
