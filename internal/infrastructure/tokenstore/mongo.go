package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultCollection = "token_store"
	mongoOpTimeout    = 10 * time.Second
)

// MongoStore keeps one document per key.
type MongoStore struct {
	col *mongo.Collection
	ttl time.Duration
	now func() time.Time
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongo binds the store to db and, when a TTL is configured, ensures the
// expiry index exists.
func NewMongo(ctx context.Context, db *mongo.Database, cfg Config) (*MongoStore, error) {
	name := cfg.Collection
	if name == "" {
		name = defaultCollection
	}
	s := &MongoStore{col: db.Collection(name), ttl: cfg.TTL, now: time.Now}
	if s.ttl > 0 {
		if err := s.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// EnsureIndexes creates the TTL index on expires_at.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("token store indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var e mongoEntry
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo find: %w", err)
	}
	// The TTL monitor runs about once a minute; hide entries it has not reaped yet.
	if e.ExpiresAt != nil && !s.now().Before(*e.ExpiresAt) {
		return "", false, nil
	}
	return e.Value, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	now := s.now().UTC()
	set := bson.M{"value": value, "updated_at": now}
	if s.ttl > 0 {
		set["expires_at"] = now.Add(s.ttl)
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

func (s *MongoStore) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.col.Database().Client().Disconnect(ctx)
}
