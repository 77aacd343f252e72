package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/domain-console/internal/api/middleware"
	"github.com/99minutos/domain-console/internal/session"
)

// sessionOf returns the browser session attached by the BrowserSession
// middleware. Its absence means the route was registered without it.
func sessionOf(c echo.Context) (*session.Context, error) {
	sc, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "browser session missing")
	}
	return sc, nil
}

// bindAndValidate binds the request into v and runs the registered validator.
// Validation failures are reported as 422.
func bindAndValidate(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
