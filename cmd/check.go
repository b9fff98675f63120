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

var checkTimeout time.Duration

// checkCmd is the comprehensive diagnostic: connect, enumerate
// collections, verify the expected ones, probe permissions, fetch the
// server version, and print a summary.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Comprehensive connection diagnostic",
	Long: `Run the full diagnostic flow against the deployment named by
MONGODB_URI:

1. verify the connection string is present (echoed with the password
   masked)
2. connect with explicit timeouts
3. report the database name
4. list all collections
5. check the expected application collections and count their documents
6. probe write, read, and delete permissions through a disposable
   probe collection
7. report the server version
8. print a summary

On connection failure the error is classified and a troubleshooting
block is printed. Permission-probe failures are reported but do not
abort the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := appcontext.WithLogger(context.Background(), logger)
		p := diag.NewPrinter(os.Stdout)

		p.Header("MongoDB connection check")
		p.Blank()

		cfg, err := config.Load(ctx, logger)
		if err != nil {
			p.Fail("%v", err)
			return reported(err)
		}
		p.OK("Connection string found: %s", config.MaskURI(cfg.MongoURI))
		if checkTimeout > 0 {
			cfg.ServerSelectionTimeout = checkTimeout
		}

		client, err := storage.Connect(ctx, cfg.MongoURI, storage.ConnectOptions{
			ServerSelectionTimeout: cfg.ServerSelectionTimeout,
			ConnectTimeout:         cfg.ConnectTimeout,
		})
		if err != nil {
			p.Fail("Connection failed: %v", err)
			p.Hints(diag.Classify(err))
			return reported(err)
		}
		defer func() {
			if deferErr := client.Disconnect(ctx); deferErr != nil {
				logger.ErrorContext(ctx, "Error disconnecting from MongoDB", "error", deferErr)
			}
		}()
		p.OK("Connected")

		runner := &diag.Runner{
			DB:       storage.NewDatabase(client, storage.DatabaseName(cfg.MongoURI, cfg.Database)),
			Printer:  p,
			Expected: cfg.ExpectedCollections,
			Probe:    cfg.ProbeCollection,
		}
		if _, err := runner.Run(ctx); err != nil {
			return reported(err)
		}

		return nil
	},
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "Server-selection timeout override (e.g. 3s)")
	rootCmd.AddCommand(checkCmd)
}
