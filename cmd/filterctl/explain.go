package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"io.winapps.adminconsole/internal/filters"
)

type fieldReport struct {
	Field  string `json:"field"`
	Kind   string `json:"kind"`
	Active bool   `json:"active"`
}

func explainBag(bag filters.Bag) []fieldReport {
	names := make([]string, 0, len(bag))
	for name := range bag {
		names = append(names, name)
	}
	sort.Strings(names)

	reports := make([]fieldReport, 0, len(names))
	for _, name := range names {
		v := bag[name]
		kind := filters.KindEmpty
		if v != nil {
			kind = v.Kind()
		}
		reports = append(reports, fieldReport{Field: name, Kind: kind.String(), Active: filters.IsActive(v)})
	}
	return reports
}

func newExplainCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [file]",
		Short: "Show how each field of a filter bag is classified",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bag, err := readBag(cmd.InOrStdin(), inputPath(args), opts.format)
			if err != nil {
				return err
			}

			reports := explainBag(bag)
			if opts.jsonOutput {
				data, err := json.MarshalIndent(reports, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tKIND\tACTIVE")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%s\t%t\n", r.Field, r.Kind, r.Active)
			}
			return w.Flush()
		},
	}
}
