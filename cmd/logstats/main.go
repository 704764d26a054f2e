// Package main is the entry point for the log-stats CLI.
package main

import (
	"os"

	"log-stats/cmd/logstats/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
