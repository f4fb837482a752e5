// Package tabular reads and writes the spreadsheet formats the pipeline
// works with: xlsx in and out, plus a plain CSV export. It knows nothing
// about enrichment; it moves rows.
package tabular

// Table is an in-memory spreadsheet: one header row and the data rows
// beneath it. Rows are kept in file order and are always padded to the
// header's width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named header, or -1 when the
// table has no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// DropColumns removes the named columns from the headers and every row.
// Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	t.Headers = filterColumns(t.Headers, drop)
	for i, row := range t.Rows {
		t.Rows[i] = filterColumns(row, drop)
	}
}

// AddColumn appends a header and one value per row. values shorter than
// the row count are padded with "".
func (t *Table) AddColumn(name string, values []string) {
	t.Headers = append(t.Headers, name)
	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		t.Rows[i] = append(t.Rows[i], v)
	}
}

func filterColumns(row []string, drop map[int]bool) []string {
	kept := make([]string, 0, len(row))
	for i, v := range row {
		if !drop[i] {
			kept = append(kept, v)
		}
	}
	return kept
}

// pad returns row extended with empty cells to width.
func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}
