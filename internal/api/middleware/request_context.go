package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/domain-console/internal/apiclient"
)

// RequestContext prepares the request context for backend calls: the
// requested path becomes the login return target, the echo request id is
// forwarded as the correlation id and a navigation slot is attached.
// It must run after echo's RequestID middleware.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := apiclient.WithCurrentPath(req.Context(), req.URL.RequestURI())
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				ctx = apiclient.WithCorrelationID(ctx, id)
			}
			ctx = withNavSlot(ctx)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
