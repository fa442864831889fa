package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"io.winapps.adminconsole/internal/filters"
)

func newCountCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "Count the active filters in a filter bag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bag, err := readBag(cmd.InOrStdin(), inputPath(args), opts.format)
			if err != nil {
				return err
			}

			summary := filters.Summarize(bag)
			out := cmd.OutOrStdout()

			if opts.jsonOutput {
				data, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			} else if summary.Count == 1 {
				fmt.Fprintln(out, "1 active filter")
			} else {
				fmt.Fprintf(out, "%d active filters\n", summary.Count)
			}

			if opts.failOnActive && summary.HasActive {
				return errFiltersActive
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.failOnActive, "fail-on-active", false, "exit with status 2 when any filter is active")
	return cmd
}
