/*
Package export serializes announcements to CSV and XLSX files.
*/
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shanehull/corpactions/internal/types"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	case "excel", "xls":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or xlsx)", s)
	}
}

// Header is the column order shared by every format.
var Header = []string{"company", "code", "date", "description", "details", "attachment_url"}

func row(a types.Announcement) []string {
	return []string{a.Company.Name, a.Company.Code, a.Date, a.Description, a.Details, a.AttachmentURL}
}

var slugRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Filename is deterministic in company and calendar day. An empty company
// names a multi-company export.
func Filename(company string, now time.Time, format Format) string {
	stamp := now.Format("20060102")
	slug := strings.Trim(slugRe.ReplaceAllString(company, "_"), "_")
	if slug == "" {
		return fmt.Sprintf("Corporate_Actions_%s.%s", stamp, format)
	}
	return fmt.Sprintf("Corporate_Actions_%s_%s.%s", slug, stamp, format)
}

// Write serializes records in the given format.
func Write(w io.Writer, format Format, records []types.Announcement) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// ToFile writes records into dir under Filename and returns the path.
func ToFile(dir, company string, now time.Time, format Format, records []types.Announcement) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(company, now, format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file %s: %w", path, err)
	}

	if err := Write(f, format, records); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file %s: %w", path, err)
	}
	return path, nil
}
