package storage_test

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mongocheck/config"
	"mongocheck/storage"
)

// resetShared rewinds the process-wide state between test cases.
func resetShared(t *testing.T) {
	t.Helper()
	storage.ResetShared()
	t.Cleanup(storage.ResetShared)
}

// fakeClient builds a client handle without any network activity; the
// driver only dials on first operation.
func fakeClient(t *testing.T, uri string) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

func TestSharedCollection_MissingURI(t *testing.T) {
	resetShared(t)
	t.Setenv("MONGODB_URI", "")

	_, err := storage.SharedCollection(context.Background(), "users")
	if !errors.Is(err, config.ErrMissingURI) {
		t.Fatalf("expected ErrMissingURI, got %v", err)
	}
}

func TestSharedCollection_ConnectErrorSticks(t *testing.T) {
	resetShared(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/app")

	connectErr := errors.New("server selection error: context deadline exceeded")
	calls := 0
	storage.ConnectFunc = func(ctx context.Context, uri string, opts storage.ConnectOptions) (*mongo.Client, error) {
		calls++
		return nil, connectErr
	}

	if _, err := storage.SharedCollection(context.Background(), "users"); !errors.Is(err, connectErr) {
		t.Fatalf("expected the connect error, got %v", err)
	}
	// Second call reports the same failure without reconnecting.
	if _, err := storage.SharedCollection(context.Background(), "users"); !errors.Is(err, connectErr) {
		t.Fatalf("expected the cached connect error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one connection attempt, got %d", calls)
	}
}

func TestSharedCollection_ReusesClientAndDefaultDatabase(t *testing.T) {
	resetShared(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/inventory")

	calls := 0
	storage.ConnectFunc = func(ctx context.Context, uri string, opts storage.ConnectOptions) (*mongo.Client, error) {
		calls++
		return fakeClient(t, uri), nil
	}

	coll, err := storage.SharedCollection(context.Background(), "orders")
	if err != nil {
		t.Fatalf("SharedCollection failed: %v", err)
	}
	if coll.Name() != "orders" {
		t.Errorf("expected collection orders, got %q", coll.Name())
	}
	if coll.Database().Name() != "inventory" {
		t.Errorf("expected database inventory, got %q", coll.Database().Name())
	}

	if _, err := storage.SharedCollection(context.Background(), "items"); err != nil {
		t.Fatalf("second SharedCollection failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected the connection to be reused, got %d connection attempts", calls)
	}

	if err := storage.Close(context.Background()); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	resetShared(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/app")

	storage.ConnectFunc = func(ctx context.Context, uri string, opts storage.ConnectOptions) (*mongo.Client, error) {
		return fakeClient(t, uri), nil
	}

	if _, err := storage.SharedCollection(context.Background(), "users"); err != nil {
		t.Fatalf("SharedCollection failed: %v", err)
	}

	if err := storage.Close(context.Background()); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := storage.Close(context.Background()); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
}

func TestSharedCollection_AfterClose(t *testing.T) {
	resetShared(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/app")

	storage.ConnectFunc = func(ctx context.Context, uri string, opts storage.ConnectOptions) (*mongo.Client, error) {
		return fakeClient(t, uri), nil
	}

	if _, err := storage.SharedCollection(context.Background(), "users"); err != nil {
		t.Fatalf("SharedCollection failed: %v", err)
	}
	if err := storage.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := storage.SharedCollection(context.Background(), "users"); !errors.Is(err, storage.ErrClientClosed) {
		t.Fatalf("expected ErrClientClosed after teardown, got %v", err)
	}
}

func TestClose_NeverInitialized(t *testing.T) {
	resetShared(t)

	if err := storage.Close(context.Background()); err != nil {
		t.Fatalf("Close before any connection should be a no-op, got %v", err)
	}
}
