package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadContext_Defaults(t *testing.T) {
	cfg, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	if cfg.Port != "8080" || cfg.API.Prefix != "/api" || cfg.API.LoginPath != "/dev-login" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Session.Cookie != "console_session" || cfg.Session.IdleTTL != 30*time.Minute {
		t.Fatalf("unexpected session defaults %+v", cfg.Session)
	}
	if cfg.TokenStore.Driver != "memory" || cfg.TokenStore.TTL != 0 {
		t.Fatalf("unexpected token store defaults %+v", cfg.TokenStore)
	}
	if cfg.Session.Secret == "" {
		t.Fatalf("development gets a session secret")
	}
}

func TestLoadContext_Overrides(t *testing.T) {
	cfg, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                "production",
		"SESSION_SECRET":     "s3cret",
		"CONSOLE_API_URL":    "https://api.example.com",
		"TOKEN_STORE_DRIVER": "redis",
		"TOKEN_STORE_TTL":    "12h",
		"REDIS_DB":           "3",
	}))
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" || cfg.TokenStore.Driver != "redis" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.TokenStore.TTL != 12*time.Hour || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected parsed values %+v %+v", cfg.TokenStore, cfg.Redis)
	}
}

func TestLoadContext_SecretRequiredOutsideDevelopment(t *testing.T) {
	_, err := LoadContext(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil {
		t.Fatalf("expected missing SESSION_SECRET to fail")
	}
}
