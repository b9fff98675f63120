package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"mongocheck/config"
)

const envMongoURI = "MONGODB_URI"

// ErrClientClosed is returned when the accessor is used after Close.
var ErrClientClosed = errors.New("shared MongoDB client is closed")

// ConnectFunc establishes the shared connection. It is a variable so
// tests can substitute their own implementation.
var ConnectFunc = Connect

// Shared process-wide client, initialized on first use. The first
// connection outcome, success or failure, holds for the life of the
// process; there is no retry.
var (
	sharedOnce sync.Once
	sharedMu   sync.Mutex
	shared     *mongo.Client
	sharedDB   string
	sharedErr  error
)

// SharedCollection returns a ready-to-use handle to the named collection
// on the shared client's default database, connecting on first use. The
// caller owns no lifecycle responsibility; Close tears the connection
// down at process exit.
func SharedCollection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, dbName, err := sharedClient(ctx)
	if err != nil {
		return nil, err
	}

	return client.Database(dbName).Collection(name), nil
}

func sharedClient(ctx context.Context) (*mongo.Client, string, error) {
	sharedOnce.Do(func() {
		uri := os.Getenv(envMongoURI)
		if uri == "" {
			sharedErr = config.ErrMissingURI
			return
		}

		client, err := ConnectFunc(ctx, uri, ConnectOptions{})
		if err != nil {
			sharedErr = fmt.Errorf("shared connection failed: %w", err)
			return
		}

		sharedMu.Lock()
		shared = client
		sharedMu.Unlock()
		sharedDB = DatabaseName(uri, config.DefaultDatabase)
	})

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedErr == nil && shared == nil {
		return nil, "", ErrClientClosed
	}

	return shared, sharedDB, sharedErr
}

// Close tears down the shared client. It is idempotent and safe to call
// even when no connection was ever established, so it can run
// unconditionally at process exit.
func Close(ctx context.Context) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil
	}

	client := shared
	shared = nil

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect shared client: %w", err)
	}

	return nil
}
