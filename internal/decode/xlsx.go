package decode

import (
	"bytes"
	"errors"

	"github.com/xuri/excelize/v2"
)

// XLSX decodes the first sheet of a spreadsheet workbook. Sectioned owner
// exports appear here too, as explicit marker cells, and go through the same
// detection as the text path.
func XLSX(name string, data []byte, kind Kind) ([]RawRow, error) {
	if len(data) == 0 {
		return nil, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{File: name, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DecodeError{File: name, Err: errors.New("workbook has no sheets")}
	}

	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &DecodeError{File: name, Err: err}
	}
	return tableRows(table, kind), nil
}
