package domain

import (
	"strings"
	"time"
)

// Token store keys. These match the keys the browser client kept in local
// storage, so a store exported from one target can be read by another.
const (
	KeyAccessToken    = "access_token"
	KeyTokenExpiresAt = "token_expires_at"
	KeyUserRoles      = "user_roles"
)

// Session is the persisted authentication state of one user agent.
type Session struct {
	AccessToken string
	ExpiresAt   string
	Roles       []string
}

// expiryLayouts are the timestamp forms accepted for ExpiresAt. Layouts
// without a zone are read as UTC.
var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Expiry parses ExpiresAt. ok is false when the value is missing or matches
// none of expiryLayouts.
func (s Session) Expiry() (time.Time, bool) {
	v := strings.TrimSpace(s.ExpiresAt)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsAuthenticated reports whether a token is present and its expiry is
// strictly after now.
func (s Session) IsAuthenticated(now time.Time) bool {
	if s.AccessToken == "" {
		return false
	}
	exp, ok := s.Expiry()
	if !ok {
		return false
	}
	return exp.After(now)
}

// LoginRequest is the body of POST /dev-login. Both fields are optional.
type LoginRequest struct {
	Subject string   `json:"subject,omitempty" validate:"omitempty,max=128"`
	Roles   []string `json:"roles,omitempty"   validate:"omitempty,dive,required"`
}

// LoginResult is returned by a successful dev login.
type LoginResult struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresAt   string   `json:"expires_at"`
	Subject     string   `json:"subject"`
	Roles       []string `json:"roles"`
}
