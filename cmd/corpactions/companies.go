package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCompaniesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "companies [query]",
		Short: "List configured companies, optionally matching a case-insensitive search",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.service.Directory()

			var query string
			if len(args) == 1 {
				query = args[0]
			}
			names := dir.Search(query)
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No companies match %q.\n", strings.TrimSpace(query))
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCODE")
			for _, name := range names {
				ref, err := dir.Resolve(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\n", ref.Name, ref.Code)
			}
			return tw.Flush()
		},
	}
}
