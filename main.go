package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"mongocheck/cmd"
	"mongocheck/storage"
)

func main() {
	err := cmd.Execute()

	// The shared client teardown runs on every exit path and is a no-op
	// when nothing ever connected through the accessor.
	if closeErr := storage.Close(context.Background()); closeErr != nil {
		slog.Error("Error closing shared MongoDB client", "error", closeErr)
	}

	if err != nil {
		// Command failures are already printed with their hints; only
		// log errors that never reached the console (bad flags, unknown
		// subcommands).
		if !errors.Is(err, cmd.ErrReported) {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			logger.Error("Diagnostic terminated with an error", "error", fmt.Sprintf("%+v", err))
		}
		os.Exit(1)
	}
}
