package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// KVCollectionName holds one document per storage key.
const KVCollectionName = "kv"

// kvDocument is one stored collection; the storage key doubles as _id.
type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"` // raw JSON
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoKVRepository implements repository.KVStore
type mongoKVRepository struct {
	collection *mongo.Collection
}

// NewMongoKVRepository creates a key-value store backed by a MongoDB collection.
func NewMongoKVRepository(db *mongo.Database) repository.KVStore {
	return &mongoKVRepository{
		collection: db.Collection(KVCollectionName),
	}
}

// Get retrieves the document stored under key.
func (r *mongoKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return []byte(doc.Value), nil
}

// Set replaces (or inserts) the document stored under key.
func (r *mongoKVRepository) Set(ctx context.Context, key string, value []byte) error {
	doc := kvDocument{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

// Remove deletes the document stored under key. Missing keys are not an error.
func (r *mongoKVRepository) Remove(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// EnsureKVIndexes creates necessary indexes for the kv collection.
func EnsureKVIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// lets backup tooling find recently changed documents
			Keys:    bson.D{{Key: "updatedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
