package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"log-stats/internal/app"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Ingest an access log and write reports",
	Long: `Ingest an access log, from --input or stdin, into the statistics seeded from
the snapshot (--load) or the cache (--cache-dir), persist them and write one JSON
report per year plus the daily series under <output-dir>/reports.

Examples:
  logstats run --input access.log --cache-dir cache
  logstats run --input - --load stats.json --save stats.json --year 2023 --top 50`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringP("input", "i", "", "access log to ingest, - or empty for stdin")
	flags.StringP("output-dir", "o", "", "directory the reports are written to")
	flags.Int("year", 0, "only report this year (0 = every year)")
	flags.Int("top", 0, "length of the ranked lists")
	flags.String("cache-dir", "", "incremental cache directory")
	flags.String("load", "", "JSON snapshot to start from")
	flags.String("save", "", "JSON snapshot to write")
	flags.String("bots", "", "file of bot IP addresses, one per line")
	flags.Bool("known-crawlers", false, "also flag user agents known as crawlers")
	flags.Bool("resolve", false, "resolve host names and merge keys with the same address")
	flags.String("geoloc-db", "", "SQLite database caching geolocations")
	flags.Int("geoloc-sample", 0, "people sampled for the country estimate (0 = skip)")
	flags.Int("tld-sample", 0, "people sampled for the top-level domain estimate (0 = skip)")
}

func runRun(cmd *cobra.Command, args []string) error {
	application, err := newApp(cmd)
	if err != nil {
		printError(err)
		return err
	}
	defer application.Close()

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	result, err := application.Run(ctx)
	if err != nil {
		printError(err)
		return err
	}
	printRunResult(result)
	return nil
}

func printRunResult(result *app.RunResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", result.RunID)
	fmt.Fprintf(w, "lines\t%d\n", result.Ingest.Lines)
	fmt.Fprintf(w, "accepted\t%d\n", result.Ingest.Accepted)
	fmt.Fprintf(w, "malformed\t%d\n", result.Ingest.Malformed)
	fmt.Fprintf(w, "bad timestamp\t%d\n", result.Ingest.BadTimestamp)
	fmt.Fprintf(w, "skipped\t%d\n", result.Ingest.Skipped)
	if result.Group != nil {
		fmt.Fprintf(w, "resolved\t%d\n", result.Group.Resolved)
		fmt.Fprintf(w, "unresolved\t%d\n", result.Group.Unresolved)
		fmt.Fprintf(w, "merged\t%d\n", result.Group.Merged)
	}
	for _, report := range result.Reports {
		fmt.Fprintf(w, "report\t%s\n", report)
	}
	_ = w.Flush()
}
