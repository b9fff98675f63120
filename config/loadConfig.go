package config

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment keys. Viper's AutomaticEnv maps them case-insensitively.
const (
	envMongoURI               = "MONGODB_URI"
	envDatabase               = "MONGOCHECK_DB"
	envExpectedCollections    = "MONGOCHECK_EXPECTED_COLLECTIONS"
	envProbeCollection        = "MONGOCHECK_PROBE_COLLECTION"
	envServerSelectionTimeout = "MONGOCHECK_SERVER_SELECTION_TIMEOUT"
	envConnectTimeout         = "MONGOCHECK_CONNECT_TIMEOUT"
)

// Load reads the diagnostic configuration from the environment or falls
// back to default values. A missing connection string is the only fatal
// condition and is reported as ErrMissingURI.
func Load(ctx context.Context, logger *slog.Logger) (*Config, error) {
	viper.AutomaticEnv()

	mongoURI := viper.GetString(envMongoURI)
	if mongoURI == "" {
		return nil, ErrMissingURI
	}
	logger.DebugContext(ctx, "Using MongoDB URI from environment variable", "uri", MaskURI(mongoURI))

	return &Config{
		MongoURI:               mongoURI,
		Database:               loadDatabase(ctx, logger),
		ExpectedCollections:    loadExpectedCollections(ctx, logger),
		ProbeCollection:        loadProbeCollection(ctx, logger),
		ServerSelectionTimeout: loadTimeout(ctx, logger, envServerSelectionTimeout, defaultServerSelectionTimeout),
		ConnectTimeout:         loadTimeout(ctx, logger, envConnectTimeout, defaultConnectTimeout),
	}, nil
}

// Fetch the fallback database name or set to a default value. It is only
// used when the connection string names no database of its own.
func loadDatabase(ctx context.Context, logger *slog.Logger) string {
	database := viper.GetString(envDatabase)
	if database == "" {
		database = DefaultDatabase
		logger.DebugContext(ctx, "Using default fallback database name", "db", database)
	} else {
		logger.DebugContext(ctx, "Using fallback database name from environment variable", "db", database)
	}

	return database
}

// Fetch the expected collection names as a comma-separated list or set to
// the default pair.
func loadExpectedCollections(ctx context.Context, logger *slog.Logger) []string {
	raw := viper.GetString(envExpectedCollections)
	if raw == "" {
		logger.DebugContext(ctx, "Using default expected collections", "collections", DefaultExpectedCollections)
		return append([]string(nil), DefaultExpectedCollections...)
	}

	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	logger.DebugContext(ctx, "Using expected collections from environment variable", "collections", names)

	return names
}

// Fetch the probe collection name or set to a default value.
func loadProbeCollection(ctx context.Context, logger *slog.Logger) string {
	probe := viper.GetString(envProbeCollection)
	if probe == "" {
		probe = DefaultProbeCollection
		logger.DebugContext(ctx, "Using default probe collection", "collection", probe)
	} else {
		logger.DebugContext(ctx, "Using probe collection from environment variable", "collection", probe)
	}

	return probe
}

// Fetch a timeout from the environment or set to a default value.
// Accepts Go duration strings such as "5s" or "1500ms".
func loadTimeout(ctx context.Context, logger *slog.Logger, key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		logger.DebugContext(ctx, "Using default timeout", "key", key, "timeout", fallback)
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		logger.WarnContext(
			ctx,
			"Invalid timeout value, using default",
			"key", key,
			"value", raw,
			"default", fallback,
			"error", err,
		)
		return fallback
	}
	logger.DebugContext(ctx, "Using timeout from environment variable", "key", key, "timeout", parsed)

	return parsed
}
