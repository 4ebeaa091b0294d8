package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/shanehull/corpactions/internal/types"
)

const SheetName = "Corporate Actions"

func WriteXLSX(w io.Writer, records []types.Announcement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(Header)); err != nil {
		return err
	}
	for i, a := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row(a))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}

// ReadXLSX parses the first sheet of a workbook produced by WriteXLSX.
func ReadXLSX(r io.Reader) ([]types.Announcement, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var out []types.Announcement
	for _, rec := range rows[1:] {
		cell := func(i int) string {
			if i < len(rec) {
				return rec[i]
			}
			return ""
		}
		out = append(out, types.Announcement{
			Company:       types.CompanyRef{Name: cell(0), Code: cell(1)},
			Date:          cell(2),
			Description:   cell(3),
			Details:       cell(4),
			AttachmentURL: cell(5),
		})
	}
	return out, nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
