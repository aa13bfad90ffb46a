package export

import (
	"encoding/csv"
	"io"
)

// BOM is the UTF-8 byte order mark, written first so spreadsheet apps detect
// the encoding of non-Latin summaries.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the checklist with a BOM and header row.
func WriteCSV(w io.Writer, c Checklist) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	if err := cw.WriteAll(c.Rows()); err != nil {
		return err
	}
	return cw.Error()
}
