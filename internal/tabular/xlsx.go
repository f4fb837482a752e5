package tabular

import (
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/sirenrich/pkg/errors"
)

// Fill colors for the reconciliation columns.
const (
	fillMatch       = "C6EFCE" // green: address agrees with the registry
	fillMismatch    = "FFC7CE" // red: address disagrees
	fillMismatchRow = "FFEBEE" // light red: whole row of a mismatch
)

// ReadXLSX loads the first sheet of an xlsx workbook. The first row is
// the header; ragged rows are padded to the header's width.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError("xlsx", path, "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParseError("xlsx", path, "sheet is empty", nil)
	}

	table := &Table{Headers: rows[0]}
	width := len(table.Headers)
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, pad(row, width))
	}
	return table, nil
}

// Highlight marks which cells of a written sheet get a reconciliation
// fill. Row indexes are data-row positions (0 = first row under the
// header).
type Highlight struct {
	// MatchRows get the green fill on the match column.
	MatchRows []int

	// MismatchRows get the red fill on the match column and the light
	// red fill across the rest of the row.
	MismatchRows []int

	// MatchColumn is the 0-based index of the column carrying the
	// match/mismatch verdict.
	MatchColumn int
}

// WriteXLSX writes the table to a single-sheet workbook at path, applying
// the highlight fills when one is given.
func WriteXLSX(path string, table *Table, highlight *Highlight) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := writeRow(f, sheet, 1, table.Headers); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for i, row := range table.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	if highlight != nil {
		if err := applyHighlight(f, sheet, table, highlight); err != nil {
			return errors.WrapIO("style", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("save", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func applyHighlight(f *excelize.File, sheet string, table *Table, h *Highlight) error {
	matchStyle, err := fillStyle(f, fillMatch)
	if err != nil {
		return err
	}
	mismatchStyle, err := fillStyle(f, fillMismatch)
	if err != nil {
		return err
	}
	rowStyle, err := fillStyle(f, fillMismatchRow)
	if err != nil {
		return err
	}

	for _, row := range h.MatchRows {
		if err := styleCell(f, sheet, h.MatchColumn, row, matchStyle); err != nil {
			return err
		}
	}
	for _, row := range h.MismatchRows {
		if err := styleCell(f, sheet, h.MatchColumn, row, mismatchStyle); err != nil {
			return err
		}
		for col := range table.Headers {
			if col == h.MatchColumn {
				continue
			}
			if err := styleCell(f, sheet, col, row, rowStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
}

func styleCell(f *excelize.File, sheet string, col, row, style int) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+2)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}
