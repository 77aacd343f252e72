package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/api/metrics"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/ports"
)

// ConfigRefresher reloads configuration after a login.
type ConfigRefresher interface {
	Load(ctx context.Context) (*domain.ConfigDocument, error)
}

// AuthSession derives authentication state from a token store. It keeps no
// copy of the session in memory, so a teardown performed by the API client
// is visible on the next call.
type AuthSession struct {
	store   ports.TokenStore
	backend ports.AuthBackend
	config  ConfigRefresher
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthSession(store ports.TokenStore, backend ports.AuthBackend, config ConfigRefresher, log zerolog.Logger) *AuthSession {
	return &AuthSession{store: store, backend: backend, config: config, log: log, now: time.Now}
}

// Session reads the persisted session.
func (s *AuthSession) Session(ctx context.Context) (domain.Session, error) {
	token, _, err := s.store.Get(ctx, domain.KeyAccessToken)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	expires, _, err := s.store.Get(ctx, domain.KeyTokenExpiresAt)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	roles, err := StoredRoles(ctx, s.store)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{AccessToken: token, ExpiresAt: expires, Roles: roles}, nil
}

// IsAuthenticated is false when the store cannot be read.
func (s *AuthSession) IsAuthenticated(ctx context.Context) bool {
	sess, err := s.Session(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("read session")
		return false
	}
	return sess.IsAuthenticated(s.now())
}

// Roles returns the persisted role list.
func (s *AuthSession) Roles(ctx context.Context) []string {
	roles, err := StoredRoles(ctx, s.store)
	if err != nil {
		s.log.Error().Err(err).Msg("read roles")
		return nil
	}
	return roles
}

// Login performs a dev login and persists the result. A failed config
// refresh afterwards is logged and does not fail the login.
func (s *AuthSession) Login(ctx context.Context, subject string, roles []string) (*domain.LoginResult, error) {
	res, err := s.backend.DevLogin(ctx, domain.LoginRequest{Subject: subject, Roles: roles})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		s.log.Error().Err(err).Str("subject", subject).Msg("login failed")
		return nil, err
	}

	granted := res.Roles
	if granted == nil {
		granted = []string{}
	}
	encoded, err := json.Marshal(granted)
	if err != nil {
		return nil, fmt.Errorf("encode roles: %w", err)
	}
	for _, kv := range [][2]string{
		{domain.KeyAccessToken, res.AccessToken},
		{domain.KeyTokenExpiresAt, res.ExpiresAt},
		{domain.KeyUserRoles, string(encoded)},
	} {
		if err := s.store.Set(ctx, kv[0], kv[1]); err != nil {
			metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
			return nil, fmt.Errorf("%w: persist %s: %w", domain.ErrStoreUnavailable, kv[0], err)
		}
	}
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.log.Info().Str("subject", res.Subject).Strs("roles", granted).Msg("logged in")

	if s.config != nil {
		if _, err := s.config.Load(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to load config after login")
		}
	}
	return res, nil
}

// Logout removes every session key. It is safe to call when logged out.
func (s *AuthSession) Logout(ctx context.Context) error {
	var errs []error
	for _, key := range []string{domain.KeyAccessToken, domain.KeyTokenExpiresAt, domain.KeyUserRoles} {
		if err := s.store.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Claims decodes the stored access token without verifying its signature.
// The console never holds the signing key; the backend verifies the token.
func (s *AuthSession) Claims(ctx context.Context) (jwt.MapClaims, error) {
	token, ok, err := s.store.Get(ctx, domain.KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if !ok || token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}
	return claims, nil
}

// StoredRoles reads the persisted role list. A missing or malformed entry
// yields an empty list.
func StoredRoles(ctx context.Context, store ports.TokenStore) ([]string, error) {
	raw, ok, err := store.Get(ctx, domain.KeyUserRoles)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	roles := []string{}
	if !ok || raw == "" {
		return roles, nil
	}
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		return []string{}, nil
	}
	return roles, nil
}

// HasStoredRole reports whether role is in the persisted role list.
func HasStoredRole(ctx context.Context, store ports.TokenStore, role string) bool {
	roles, err := StoredRoles(ctx, store)
	if err != nil {
		return false
	}
	return slices.Contains(roles, role)
}
