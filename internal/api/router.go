package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/domain-console/docs"
	"github.com/99minutos/domain-console/internal/api/handler"
	"github.com/99minutos/domain-console/internal/api/middleware"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/session"
)

// Options carries everything the console server needs.
type Options struct {
	Sessions      *session.Registry
	Catalog       domain.Catalog
	AdminRole     string
	DefaultRoute  string
	SessionCookie string
	SessionSecret string
	SecureCookie  bool
	// Checks run on GET /health/ready.
	Checks []handler.Check
	// Registerer and Gatherer default to the global prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	if opts.DefaultRoute == "" {
		opts.DefaultRoute = opts.Catalog.DefaultRoute()
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "console",
		Subsystem:  "http",
		Registerer: opts.Registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health")
		},
	}))

	// --- Health probes, metrics and docs (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Checks...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Console views (browser session required) ---
	views := e.Group("",
		middleware.RequestContext(),
		echosession.Middleware(sessions.NewCookieStore([]byte(opts.SessionSecret))),
		middleware.BrowserSession(opts.Sessions, opts.SessionCookie, opts.SecureCookie),
	)

	routeList := domain.Routes(opts.Catalog, opts.AdminRole)
	routes := make(map[string]domain.RouteMeta, len(routeList))
	for _, r := range routeList {
		routes[r.Name] = r
	}
	guard := func(name string) echo.MiddlewareFunc {
		return middleware.Guard(routes[name])
	}

	views.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, opts.DefaultRoute)
	})

	authHandler := handler.NewAuthHandler(opts.Sessions, opts.SessionCookie, opts.DefaultRoute)
	views.GET(domain.LoginPath, authHandler.LoginPage, guard(domain.LoginRouteName))
	views.POST(domain.LoginPath, authHandler.Login)
	views.POST("/logout", authHandler.Logout)

	for _, spec := range opts.Catalog {
		h := handler.NewDomainHandler(spec, opts.Log)

		views.GET(spec.ListPath(), h.List, guard(spec.ListRouteName()))
		if spec.Can(domain.CapCreate) {
			views.GET(spec.NewPath(), h.New, guard(spec.NewRouteName()))
			views.POST(spec.ListPath(), h.Create, guard(spec.NewRouteName()))
		}
		views.GET(spec.DetailPath(), h.Get, guard(spec.DetailRouteName()))
		if spec.Can(domain.CapUpdate) {
			views.PATCH(spec.DetailPath(), h.Update, guard(spec.DetailRouteName()))
		}
	}

	adminHandler := handler.NewAdminHandler(routeList)
	views.GET(domain.AdminPath, adminHandler.Admin, guard(domain.AdminRouteName))

	return e
}
