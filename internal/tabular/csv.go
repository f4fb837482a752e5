package tabular

import (
	"encoding/csv"
	"os"

	"github.com/agentstation/sirenrich/pkg/errors"
)

// utf8BOM keeps accented French text readable when the CSV is opened in
// spreadsheet software that assumes a legacy encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the table as UTF-8 CSV with a leading BOM, header row
// first.
func WriteCSV(path string, table *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return errors.WrapIO("write", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Headers); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}

	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}
