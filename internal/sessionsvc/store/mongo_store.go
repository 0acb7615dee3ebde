package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zahlenlotto/lotto-services/internal/comm"
)

type sessionDoc struct {
	Seed      string         `bson:"_id"`
	State     comm.GameState `bson:"state"`
	ExpiresAt time.Time      `bson:"expires_at"`
}

// MongoStore keeps session records in the "sessions" collection. A TTL index
// on expires_at evicts records 24 hours after their last write.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection("sessions")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ttl index: %w", err)
	}

	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, seed string) (*comm.GameState, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": seed}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", seed, err)
	}
	return &doc.State, nil
}

func (s *MongoStore) Put(ctx context.Context, seed string, state *comm.GameState) error {
	doc := sessionDoc{
		Seed:      seed,
		State:     *state,
		ExpiresAt: time.Now().Add(TTL),
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": seed}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to put session %s: %w", seed, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, seed string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": seed})
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", seed, err)
	}
	return nil
}

func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}
