package ports

import (
	"context"

	"github.com/99minutos/domain-console/internal/core/domain"
)

// AuthBackend performs the dev login against the backend.
type AuthBackend interface {
	DevLogin(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error)
}

// ConfigBackend fetches the configuration document.
type ConfigBackend interface {
	GetConfig(ctx context.Context) (*domain.ConfigDocument, error)
}

// Navigator performs the "go to location" effect requested by the API client
// when the backend rejects the session.
type Navigator interface {
	Navigate(ctx context.Context, location string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, location string)

func (f NavigatorFunc) Navigate(ctx context.Context, location string) { f(ctx, location) }
