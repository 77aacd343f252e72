package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/domain-console/internal/core/domain"
)

// Guard evaluates route against the browser session before the handler runs.
// Redirect decisions are answered with 302 and the handler is skipped.
func Guard(route domain.RouteMeta) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sc, ok := SessionFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "browser session missing")
			}
			req := c.Request()
			d := sc.Guard.Evaluate(req.Context(), route, req.URL.RequestURI())
			if !d.Allowed() {
				return c.Redirect(http.StatusFound, d.Location)
			}
			return next(c)
		}
	}
}
