// Package tokenstore provides the key-value backends that hold session
// credentials. A backend is flat; Scoped namespaces it per browser session.
package tokenstore

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/domain-console/internal/core/ports"
)

// Driver identifiers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverFile   = "file"
)

// Backend is a TokenStore that owns a connection or file.
type Backend interface {
	ports.TokenStore
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Config selects and tunes a backend.
type Config struct {
	Driver string
	// TTL expires idle entries. Zero keeps them until removed, like browser
	// local storage. Ignored by the file driver.
	TTL time.Duration
	// Prefix namespaces redis keys.
	Prefix string
	// Collection is the mongo collection name.
	Collection string
	// FilePath is the YAML file used by the file driver.
	FilePath string
}

// Dependencies carries the connections some drivers need.
type Dependencies struct {
	Redis *goredis.Client
	Mongo *mongo.Database
}

// New creates a backend from cfg.
func New(ctx context.Context, cfg Config, deps Dependencies) (Backend, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		return NewMemory(cfg), nil
	case DriverRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis driver requires a redis client")
		}
		return NewRedis(deps.Redis, cfg), nil
	case DriverMongo:
		if deps.Mongo == nil {
			return nil, fmt.Errorf("mongo driver requires a database handle")
		}
		return NewMongo(ctx, deps.Mongo, cfg)
	case DriverFile:
		return NewFile(cfg.FilePath)
	default:
		return nil, fmt.Errorf("unsupported token store driver: %s", driver)
	}
}
