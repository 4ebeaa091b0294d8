package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shanehull/corpactions/internal/export"
	"github.com/shanehull/corpactions/internal/types"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		q      queryFlags
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "export [company...]",
		Short: "Write filtered announcements to a CSV or XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = opts.cfg.Export.Format
			}
			if dir == "" {
				dir = opts.cfg.Export.Dir
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			results, _, err := opts.lookup(cmd, args, &q)
			if err != nil {
				return err
			}

			var records []types.Announcement
			for _, r := range results {
				if r.Warning != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", r.Warning)
				}
				records = append(records, r.Records...)
			}

			// Single-company exports are named after the company.
			var company string
			if len(results) == 1 {
				company = results[0].Company.Name
			}

			path, err := export.ToFile(dir, company, opts.now(), f, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d announcement(s) to %s\n", len(records), path)
			return nil
		},
	}

	q.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "csv or xlsx (default from config)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default from config)")
	return cmd
}
