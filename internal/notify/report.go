/*
Package notify renders lookup results to the console, as JSON, and as an
email digest.
*/
package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tidwall/pretty"

	"github.com/shanehull/corpactions/internal/pipeline"
)

const maxDescriptionWidth = 80

// ReportResults prints one table row per announcement followed by any warnings.
func ReportResults(w io.Writer, results []pipeline.Result) error {
	total := 0
	for _, r := range results {
		total += len(r.Records)
	}

	if total == 0 {
		fmt.Fprintln(w, "No announcements found.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COMPANY\tCODE\tDATE\tDESCRIPTION\tATTACHMENT")
		for _, r := range results {
			for _, a := range r.Records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					a.Company.Name,
					a.Company.Code,
					a.Date,
					truncate(a.Description, maxDescriptionWidth),
					a.AttachmentURL,
				)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%d announcement(s)\n", total)
	}

	for _, r := range results {
		if r.Warning != "" {
			fmt.Fprintf(w, "Warning: %s\n", r.Warning)
		}
	}
	return nil
}

// ReportJSON writes results as indented JSON.
func ReportJSON(w io.Writer, results []pipeline.Result) error {
	if results == nil {
		results = []pipeline.Result{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}
