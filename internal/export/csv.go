package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shanehull/corpactions/internal/types"
)

func WriteCSV(w io.Writer, records []types.Announcement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, a := range records {
		if err := cw.Write(row(a)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV. Columns are matched by header
// name so reordered files still read back.
func ReadCSV(r io.Reader) ([]types.Announcement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv export is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range []string{"date", "description", "attachment_url"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csv export is missing column %q", col)
		}
	}

	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var out []types.Announcement
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		out = append(out, types.Announcement{
			Company:       types.CompanyRef{Name: get(rec, "company"), Code: get(rec, "code")},
			Date:          get(rec, "date"),
			Description:   get(rec, "description"),
			Details:       get(rec, "details"),
			AttachmentURL: get(rec, "attachment_url"),
		})
	}
	return out, nil
}
