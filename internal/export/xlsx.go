package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Checklist"

// WriteXLSX writes the checklist as a single-sheet workbook.
func WriteXLSX(w io.Writer, c Checklist) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	rows := append([][]string{columns}, c.Rows()...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheetName, "C", "C", 80); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return err
	}

	return f.Write(w)
}

// Write dispatches on format.
func Write(w io.Writer, f Format, c Checklist) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, c)
	case FormatXLSX:
		return WriteXLSX(w, c)
	default:
		return fmt.Errorf("export.Write: unknown format %q", f)
	}
}
