package config

import (
	"errors"
	"time"
)

// ErrMissingURI is returned when no connection string is configured.
// It is detected before any network activity takes place.
var ErrMissingURI = errors.New("MONGODB_URI environment variable is not set")

// Default values, overridable through the environment.
const (
	DefaultDatabase               = "test"
	DefaultProbeCollection        = "_connection_test"
	defaultServerSelectionTimeout = 5 * time.Second
	defaultConnectTimeout         = 10 * time.Second
)

// DefaultExpectedCollections are the application collections the
// comprehensive check looks for. They are only ever read, never created.
var DefaultExpectedCollections = []string{"profile", "users"}

// Config holds the diagnostic configuration.
type Config struct {
	MongoURI               string
	Database               string
	ExpectedCollections    []string
	ProbeCollection        string
	ServerSelectionTimeout time.Duration
	ConnectTimeout         time.Duration
}
