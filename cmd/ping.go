package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mongocheck/appcontext"
	"mongocheck/config"
	"mongocheck/diag"
	"mongocheck/storage"
)

var pingTimeout time.Duration

// pingCmd is the quick liveness check: connect, ping, report the
// database name.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Quick liveness check against the configured deployment",
	Long: `Connect to the deployment named by MONGODB_URI with a short
server-selection timeout, ping it, and report the database name.

Exit code 0 means the deployment answered the ping; 1 means missing
configuration or a failed connection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := appcontext.WithLogger(context.Background(), logger)
		p := diag.NewPrinter(os.Stdout)

		cfg, err := config.Load(ctx, logger)
		if err != nil {
			p.Fail("%v", err)
			return reported(err)
		}
		if pingTimeout > 0 {
			cfg.ServerSelectionTimeout = pingTimeout
		}

		client, err := storage.Connect(ctx, cfg.MongoURI, storage.ConnectOptions{
			ServerSelectionTimeout: cfg.ServerSelectionTimeout,
			ConnectTimeout:         cfg.ConnectTimeout,
		})
		if err != nil {
			p.Fail("Connection failed: %v", err)
			return reported(err)
		}
		defer func() {
			if deferErr := client.Disconnect(ctx); deferErr != nil {
				logger.ErrorContext(ctx, "Error disconnecting from MongoDB", "error", deferErr)
			}
		}()

		p.OK("Connected (database: %s)", storage.DatabaseName(cfg.MongoURI, cfg.Database))

		return nil
	},
}

func init() {
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 0, "Server-selection timeout override (e.g. 3s)")
	rootCmd.AddCommand(pingCmd)
}
