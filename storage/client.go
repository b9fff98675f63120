package storage

import (
	"context"
	"fmt"
	"time"

	"mongocheck/appcontext"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Client defines the interface for a MongoDB client.
type Client interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

// ConnectOptions carries the transport-level timeouts for a connection
// attempt. Zero values leave the driver defaults in place.
type ConnectOptions struct {
	ServerSelectionTimeout time.Duration
	ConnectTimeout         time.Duration
}

// Connect establishes a connection to MongoDB and verifies it with a ping
// against the primary. The returned error wraps the raw driver error so
// callers can still classify it with errors.As and the driver predicates.
func Connect(ctx context.Context, uri string, opts ConnectOptions) (*mongo.Client, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Attempting to connect to MongoDB")

	clientOptions := options.Client().ApplyURI(uri)
	if opts.ServerSelectionTimeout > 0 {
		clientOptions.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}
	if opts.ConnectTimeout > 0 {
		clientOptions.SetConnectTimeout(opts.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := verifyConnection(ctx, client); err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "Successfully established connection to MongoDB")

	return client, nil
}

// verifyConnection pings the primary through the Client seam. When the
// ping fails the client is torn down before the error is returned: the
// driver holds background resources even for a connection that never
// answered, and the disconnect must run exactly once.
func verifyConnection(ctx context.Context, client Client) error {
	logger := appcontext.LoggerFromContext(ctx)

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if deferErr := client.Disconnect(ctx); deferErr != nil {
			logger.ErrorContext(ctx, "Error disconnecting after failed ping", "error", deferErr)
		}
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return nil
}

// DatabaseName resolves the database named by the connection string,
// falling back to the provided default when the URI carries none or
// cannot be parsed.
func DatabaseName(uri, fallback string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return fallback
	}

	return cs.Database
}
