package apiclient

import (
	"context"
	"net/http"

	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/ports"
)

var (
	_ ports.AuthBackend   = (*Client)(nil)
	_ ports.ConfigBackend = (*Client)(nil)
)

// DevLogin exchanges an optional subject and role list for an access token.
// It is served outside the API prefix and a 401 here never tears down the
// session or navigates; it only returns the *APIError.
func (c *Client) DevLogin(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	var out domain.LoginResult
	if err := c.send(ctx, http.MethodPost, c.loginPath, req, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetConfig fetches the configuration document.
func (c *Client) GetConfig(ctx context.Context) (*domain.ConfigDocument, error) {
	var out domain.ConfigDocument
	if err := c.Do(ctx, http.MethodGet, "/config", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
