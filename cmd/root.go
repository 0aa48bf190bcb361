package cmd

import (
	"os"

	"github.com/killallgit/rewise-api/internal/logging"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rewise-api",
	Short: "ReWise podcast API server",
	Long: `ReWise API - podcast search and episode retrieval

This API proxies podcast searches to the iTunes Search API and turns
podcast RSS feeds into a short, normalized episode list.

Features:
  • Podcast search via the iTunes Search API
  • RSS feed parsing with a 10 minute in-memory cache
  • Cache inspection and clearing endpoints
  • Per-client rate limiting`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// setupLogging configures logging from the persistent flags. serve refines it
// once the configuration is loaded.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.Init(level, logFormat(cmd, ""), cmd.ErrOrStderr())
}

// logFormat prefers --json-logs, then the configured format.
func logFormat(cmd *cobra.Command, configured string) string {
	if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
		return logging.FormatJSON
	}
	if configured != "" {
		return configured
	}
	return logging.FormatPlain
}
