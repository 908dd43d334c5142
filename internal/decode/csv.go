package decode

import (
	"encoding/csv"
	"errors"
	"strings"
	"unicode/utf8"
)

// CSV decodes a delimited-text export. The file is split into physical
// lines first (sectioned exports interleave markers, metadata and tables,
// which a plain CSV reader cannot represent), then each line is split
// quote-aware so embedded delimiters survive. Quoted fields spanning a
// physical newline do not: one record per line.
func CSV(name string, data []byte, kind Kind) ([]RawRow, error) {
	if !utf8.Valid(data) {
		return nil, &DecodeError{File: name, Err: errNotText}
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var table [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		table = append(table, splitLine(line))
	}
	return tableRows(table, kind), nil
}

// splitLine splits one physical line into fields, honoring double-quoted
// fields with embedded commas. A malformed line degrades to a single field
// rather than failing the file.
func splitLine(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	fields, err := r.Read()
	if err != nil {
		return []string{line}
	}
	return fields
}

var errNotText = errors.New("file is not valid text")
