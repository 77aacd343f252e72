// Command server runs the domain console: a session-aware JSON front end
// over the domain REST API.
//
//	@title		Domain Console
//	@version	1.0
//	@BasePath	/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/domain-console/internal/api"
	"github.com/99minutos/domain-console/internal/api/handler"
	"github.com/99minutos/domain-console/internal/api/middleware"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/infrastructure/tokenstore"
	"github.com/99minutos/domain-console/internal/pkg/config"
	"github.com/99minutos/domain-console/internal/session"
	"github.com/99minutos/domain-console/pkg/logger"
)

const sweepInterval = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "domain-console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := tokenstore.Open(ctx, tokenstore.Config{
		Driver:   cfg.TokenStore.Driver,
		TTL:      cfg.TokenStore.TTL,
		FilePath: cfg.TokenStore.FilePath,
	}, tokenstore.Servers{
		MongoURI:      cfg.Mongo.URI,
		MongoDatabase: cfg.Mongo.Database,
		RedisAddr:     cfg.Redis.Addr,
		RedisDB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("token store close")
		}
	}()
	log.Info().Str("driver", cfg.TokenStore.Driver).Msg("token store ready")

	catalog := domain.DefaultCatalog()
	defaultRoute := cfg.API.DefaultRoute
	if defaultRoute == "" {
		defaultRoute = catalog.DefaultRoute()
	}

	registry := session.NewRegistry(store, session.Settings{
		BaseURL:      cfg.API.BaseURL,
		Prefix:       cfg.API.Prefix,
		LoginPath:    cfg.API.LoginPath,
		DefaultRoute: defaultRoute,
		Navigator:    middleware.Navigator{},
	}, cfg.Session.IdleTTL, logger.Component("session"))
	go registry.Run(ctx, sweepInterval)

	e := api.NewRouter(api.Options{
		Sessions:      registry,
		Catalog:       catalog,
		AdminRole:     cfg.API.AdminRole,
		DefaultRoute:  defaultRoute,
		SessionCookie: cfg.Session.Cookie,
		SessionSecret: cfg.Session.Secret,
		SecureCookie:  cfg.Session.Secure,
		Checks: []handler.Check{
			{Name: "token_store", Probe: store.Ping},
			{Name: "backend", Probe: handler.HTTPReachable(nil, cfg.API.BaseURL)},
		},
		Log: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.API.BaseURL).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
