package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds connection settings for the MongoDB-backed registry.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name (default "chartbridge").
	Database string

	// Collection is the collection name (default "instances").
	Collection string
}

// MongoStore is a MongoDB-backed registry for deployments where instance
// records should survive server restarts.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// mongoInstance is the stored document shape. The instance record is kept
// as a JSON string so chart data and option trees round-trip through their
// json tags rather than bson's map encoding.
type mongoInstance struct {
	ID        string    `bson:"_id"`
	Record    string    `bson:"record"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore creates a MongoDB-backed registry and verifies connectivity.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := cfg.Database
	if db == "" {
		db = "chartbridge"
	}
	coll := cfg.Collection
	if coll == "" {
		coll = "instances"
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(db).Collection(coll),
	}, nil
}

// Get retrieves an instance by id.
func (s *MongoStore) Get(ctx context.Context, id string) (*Instance, error) {
	var doc mongoInstance
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get instance: %w", err)
	}

	inst, err := decodeInstance([]byte(doc.Record))
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// Set stores an instance, replacing any existing record with the same id.
func (s *MongoStore) Set(ctx context.Context, inst *Instance) error {
	record, err := encodeInstance(inst)
	if err != nil {
		return err
	}

	doc := mongoInstance{ID: inst.ID, Record: string(record), UpdatedAt: inst.UpdatedAt}
	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": inst.ID}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set instance: %w", err)
	}
	return nil
}

// Delete removes an instance.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete instance: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
