// Package cmd contains the CLI commands for log-stats.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log-stats/internal/app"
	"log-stats/internal/shared/configs"

	"github.com/spf13/cobra"
)

var (
	// Used for flags
	configPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "logstats",
	Short: "Access log statistics",
	Long: `logstats turns web server access logs in the combined format into yearly
statistics of people and bots: sessions, requests, daily series and top keys.

Statistics can be kept between runs in an incremental cache or a JSON snapshot,
so a growing log is only read past the last ingested entry.

Examples:
  # Ingest a log and write reports to ./out/reports
  logstats run --input access.log --output-dir out --cache-dir cache

  # Resolve host names and merge keys that share an address
  zcat access.log.gz | logstats run --resolve --save stats.json

  # Serve the reports of a snapshot
  logstats serve --load stats.json --port 8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Run when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging, including every malformed line")
}

// newApp loads the configuration with the flags of cmd applied and builds the app.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := configs.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// printError reports err on stderr.
func printError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}
