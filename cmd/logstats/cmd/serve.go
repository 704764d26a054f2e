package cmd

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP",
	Long: `Load the statistics from the snapshot (--load) or the cache (--cache-dir) and
serve them read-only until interrupted:

  GET /years               years with statistics
  GET /years/{year}?top=N  report of one year
  GET /daily               daily series
  GET /metrics             Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.IntP("port", "p", 0, "listen port")
	flags.Int("top", 0, "default length of the ranked lists")
	flags.String("cache-dir", "", "incremental cache directory")
	flags.String("load", "", "JSON snapshot to serve")
	flags.Bool("resolve", false, "resolve host names of ranked keys")
	flags.String("geoloc-db", "", "SQLite database caching geolocations")
	flags.Int("geoloc-sample", 0, "people sampled for the country estimate (0 = skip)")
	flags.Int("tld-sample", 0, "people sampled for the top-level domain estimate (0 = skip)")
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := newApp(cmd)
	if err != nil {
		printError(err)
		return err
	}
	defer application.Close()

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	if err := application.Serve(ctx); err != nil {
		printError(err)
		return err
	}
	return nil
}
