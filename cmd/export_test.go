package cmd

// SetArgs points the root command at the given arguments for a test run.
func SetArgs(args []string) {
	rootCmd.SetArgs(args)
}
