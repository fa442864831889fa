package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errFiltersActive signals --fail-on-active found at least one active filter
var errFiltersActive = errors.New("filters are active")

type options struct {
	format       string
	jsonOutput   bool
	failOnActive bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "filterctl",
		Short:         "Inspect admin console filter bags",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "json", "input format: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(newCountCmd(opts))
	rootCmd.AddCommand(newExplainCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errFiltersActive) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
