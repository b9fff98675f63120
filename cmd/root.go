package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	verbose bool
	Version = "0.3.1"
)

// ErrReported marks a failure the command has already printed to the
// console; main still exits nonzero but must not log it a second time.
var ErrReported = errors.New("failure already reported")

// reported tags err as already printed while keeping it matchable with
// errors.Is and errors.As.
func reported(err error) error {
	return errors.Join(ErrReported, err)
}

var rootCmd = &cobra.Command{
	Use:   "mongocheck",
	Short: "Connection diagnostics for MongoDB deployments",
	Long: `mongocheck verifies that a MongoDB deployment is reachable with the
credentials in MONGODB_URI and inspects what the connected user can see
and do: collections, document counts, write/read/delete permissions,
and the server version.

Commands:
- ping   quick liveness check (connect and ping)
- check  full diagnostic with permission probe and summary`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

func initConfig() {
	// A .env next to the binary is optional; the real environment wins.
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	viper.AutomaticEnv()
}

// newLogger builds the logger the diagnostics carry in their context.
// Debug level is gated behind --verbose so the glyph output stays clean.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
