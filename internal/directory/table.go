package directory

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shanehull/corpactions/internal/types"
)

const (
	DefaultNameColumn = "NAME OF COMPANY"
	DefaultCodeColumn = "SCRIP CODE"
)

// LoadTable reads a CSV company table with a header row and keeps the two
// named columns. Rows missing either value are skipped.
func LoadTable(r io.Reader, nameCol, codeCol string) (*Index, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read company table: %w", err)
	}
	return fromRows(rows, nameCol, codeCol)
}

// LoadTableFile loads a company table from disk. Files ending in .xlsx are
// read from their first sheet; anything else is treated as CSV.
func LoadTableFile(path, nameCol, codeCol string) (*Index, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open company workbook %s: %w", path, err)
		}
		defer f.Close()
		return fromWorkbook(f, nameCol, codeCol)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read company table %s: %w", path, err)
	}
	return LoadTable(bytes.NewReader(data), nameCol, codeCol)
}

// LoadWorkbook reads a company table from the first sheet of an XLSX stream.
func LoadWorkbook(r io.Reader, nameCol, codeCol string) (*Index, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open company workbook: %w", err)
	}
	defer f.Close()
	return fromWorkbook(f, nameCol, codeCol)
}

func fromWorkbook(f *excelize.File, nameCol, codeCol string) (*Index, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("company workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows, nameCol, codeCol)
}

func fromRows(rows [][]string, nameCol, codeCol string) (*Index, error) {
	if nameCol == "" {
		nameCol = DefaultNameColumn
	}
	if codeCol == "" {
		codeCol = DefaultCodeColumn
	}
	if len(rows) == 0 {
		return nil, errors.New("company table is empty")
	}

	nameIdx, codeIdx := -1, -1
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case strings.EqualFold(h, nameCol):
			nameIdx = i
		case strings.EqualFold(h, codeCol):
			codeIdx = i
		}
	}
	if nameIdx < 0 || codeIdx < 0 {
		return nil, fmt.Errorf("company table must have columns %q and %q", nameCol, codeCol)
	}

	refs := make([]types.CompanyRef, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if nameIdx >= len(row) || codeIdx >= len(row) {
			continue
		}
		refs = append(refs, types.CompanyRef{Name: row[nameIdx], Code: row[codeIdx]})
	}
	return newIndex(refs), nil
}
