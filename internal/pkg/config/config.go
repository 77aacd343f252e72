package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const devSessionSecret = "development-only-session-secret"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API        APIConfig
	Session    SessionConfig
	TokenStore TokenStoreConfig
	Mongo      MongoConfig
	Redis      RedisConfig
}

// APIConfig points the console at the backend REST API.
type APIConfig struct {
	BaseURL      string `env:"CONSOLE_API_URL,       default=http://localhost:8000"`
	Prefix       string `env:"CONSOLE_API_PREFIX,    default=/api"`
	LoginPath    string `env:"CONSOLE_LOGIN_PATH,    default=/dev-login"`
	DefaultRoute string `env:"CONSOLE_DEFAULT_ROUTE"`
	AdminRole    string `env:"CONSOLE_ADMIN_ROLE,    default=admin"`
}

type SessionConfig struct {
	Cookie  string        `env:"SESSION_COOKIE,   default=console_session"`
	Secret  string        `env:"SESSION_SECRET"`
	Secure  bool          `env:"SESSION_SECURE,   default=false"`
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL, default=30m"`
}

type TokenStoreConfig struct {
	Driver   string        `env:"TOKEN_STORE_DRIVER, default=memory"`
	FilePath string        `env:"TOKEN_STORE_FILE"`
	TTL      time.Duration `env:"TOKEN_STORE_TTL,    default=0s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=domain_console"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads a .env file when present, then the environment.
func Load() *Config {
	cfg, err := LoadContext(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadContext resolves the configuration from lookuper. Outside development a
// session secret is mandatory.
func LoadContext(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("SESSION_SECRET is required")
		}
		cfg.Session.Secret = devSessionSecret
	}
	return &cfg, nil
}
