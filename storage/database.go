package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ---- Abstractions for Testability ----

// Collection defines the interface for the collection operations the
// diagnostics exercise.
type Collection interface {
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	InsertOne(ctx context.Context, document interface{}) (interface{}, error)
	FindOne(ctx context.Context, filter interface{}) error
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

// Database defines the interface for database-level diagnostics.
type Database interface {
	Name() string
	ListCollectionNames(ctx context.Context) ([]string, error)
	Collection(name string) Collection
	ServerVersion(ctx context.Context) (string, error)
}

// MongoCollection adapts *mongo.Collection to Collection.
type MongoCollection struct {
	coll *mongo.Collection
}

// CountDocuments counts the documents matching the filter.
func (c *MongoCollection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents in %s: %w", c.coll.Name(), err)
	}

	return count, nil
}

// InsertOne inserts a single document and returns the inserted ID.
func (c *MongoCollection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	result, err := c.coll.InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("failed to perform InsertOne: %w", err)
	}

	return result.InsertedID, nil
}

// FindOne looks up a single document matching the filter. Only the
// lookup outcome matters to the diagnostics, not the document itself.
func (c *MongoCollection) FindOne(ctx context.Context, filter interface{}) error {
	var doc bson.M
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return fmt.Errorf("failed to perform FindOne: %w", err)
	}

	return nil
}

// DeleteOne removes a single document matching the filter and returns the
// number of documents deleted.
func (c *MongoCollection) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	result, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to perform DeleteOne: %w", err)
	}

	return result.DeletedCount, nil
}

// MongoDatabase adapts *mongo.Database to Database. It keeps a handle on
// the client because the server version lives on the admin database.
type MongoDatabase struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewDatabase returns a Database bound to the named database on the
// given client.
func NewDatabase(client *mongo.Client, name string) *MongoDatabase {
	return &MongoDatabase{
		client: client,
		db:     client.Database(name),
	}
}

// Name returns the database name.
func (d *MongoDatabase) Name() string {
	return d.db.Name()
}

// ListCollectionNames lists every collection in the database.
func (d *MongoDatabase) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := d.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	return names, nil
}

// Collection returns a Collection for the given collection name.
func (d *MongoDatabase) Collection(name string) Collection {
	return &MongoCollection{coll: d.db.Collection(name)}
}

// ServerVersion queries the server build version through the buildInfo
// command on the admin database.
func (d *MongoDatabase) ServerVersion(ctx context.Context) (string, error) {
	var info struct {
		Version string `bson:"version"`
	}

	cmd := bson.D{{Key: "buildInfo", Value: 1}}
	if err := d.client.Database("admin").RunCommand(ctx, cmd).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to query server build info: %w", err)
	}

	return info.Version, nil
}
