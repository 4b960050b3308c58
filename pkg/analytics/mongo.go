package analytics

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultMongoDatabase is the database used when none is configured.
	DefaultMongoDatabase = "gitcite"

	// DefaultMongoCollection is the collection used when none is configured.
	DefaultMongoCollection = "events"
)

// inserter is the subset of *mongo.Collection used by MongoSink.
type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// MongoSink inserts one document per event.
type MongoSink struct {
	coll       inserter
	disconnect func(context.Context) error
}

// NewMongoSink connects to uri and verifies the connection with a ping.
func NewMongoSink(ctx context.Context, uri, database, collection string) (*MongoSink, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo analytics sink: uri is required")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoSink{
		coll:       client.Database(database).Collection(collection),
		disconnect: client.Disconnect,
	}, nil
}

func (s *MongoSink) Track(ctx context.Context, e Event) error {
	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

func (s *MongoSink) Close(ctx context.Context) error {
	if s.disconnect == nil {
		return nil
	}
	return s.disconnect(ctx)
}
