package tokenstore

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDialTimeout = 10 * time.Second

// Servers holds the connection settings of the drivers that dial a server.
type Servers struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisDB       int
	// DialTimeout bounds connect and the first ping. Defaults to 10s.
	DialTimeout time.Duration
}

// Open connects to the server cfg.Driver needs, if any, and returns a backend
// that owns the connection. Close releases it.
func Open(ctx context.Context, cfg Config, srv Servers) (Backend, error) {
	timeout := srv.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	var deps Dependencies
	switch cfg.Driver {
	case DriverRedis:
		client, err := dialRedis(ctx, srv, timeout)
		if err != nil {
			return nil, err
		}
		deps.Redis = client
	case DriverMongo:
		db, err := dialMongo(ctx, srv, timeout)
		if err != nil {
			return nil, err
		}
		deps.Mongo = db
	}

	backend, err := New(ctx, cfg, deps)
	if err != nil {
		if deps.Redis != nil {
			_ = deps.Redis.Close()
		}
		if deps.Mongo != nil {
			_ = deps.Mongo.Client().Disconnect(context.WithoutCancel(ctx))
		}
		return nil, err
	}
	return backend, nil
}

func dialRedis(ctx context.Context, srv Servers, timeout time.Duration) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr: srv.RedisAddr,
		DB:   srv.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", srv.RedisAddr, err)
	}
	return client, nil
}

func dialMongo(ctx context.Context, srv Servers, timeout time.Duration) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(srv.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client.Database(srv.MongoDatabase), nil
}
