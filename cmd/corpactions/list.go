package main

import (
	"github.com/spf13/cobra"

	"github.com/shanehull/corpactions/internal/notify"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		q      queryFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list [company...]",
		Short: "Show announcements for the given companies (default: all configured)",
		Example: `  corpactions list
  corpactions list "Kajaria Ceramics" --window 3m
  corpactions list --from 01/06/2024 --to 30/06/2024 --search dividend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, _, err := opts.lookup(cmd, args, &q)
			if err != nil {
				return err
			}
			if asJSON {
				return notify.ReportJSON(cmd.OutOrStdout(), results)
			}
			return notify.ReportResults(cmd.OutOrStdout(), results)
		},
	}

	q.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
