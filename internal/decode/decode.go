// Package decode turns raw export files (delimited text or spreadsheet
// workbooks) into ordered sequences of loosely-typed rows. It knows nothing
// about canonical record schemas; it only finds the header, tags sectioned
// exports, and maps cells onto column labels.
package decode

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies which record type a file slot (or a section of a sectioned
// export) is expected to hold.
type Kind string

const (
	KindMessage Kind = "message"
	KindCall    Kind = "call"
	KindContact Kind = "contact"
	KindBank    Kind = "bank"
)

// RawRow maps column labels onto string cell values. Labels preserves the
// header order; cells beyond the header width get synthetic column_N labels.
type RawRow struct {
	Labels []string
	Values map[string]string

	// KindHint is set when a sectioned export tagged the row with its
	// section, so the normalizer can drop rows of the wrong kind.
	KindHint Kind

	// DirectionHint is set when the export's owner-metadata line let the
	// decoder classify the row as sent or received.
	DirectionHint string
}

// Get returns the cell under label, or "" when absent.
func (r RawRow) Get(label string) string {
	return r.Values[label]
}

// DecodeError wraps any failure to read or parse a file, keeping the file
// name for the user-facing error surface.
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// File decodes raw file bytes, dispatching on the file extension.
// Empty files yield an empty row sequence, not an error.
func File(name string, data []byte, kind Kind) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return CSV(name, data, kind)
	case ".xls", ".xlsx":
		return XLSX(name, data, kind)
	default:
		return nil, &DecodeError{File: name, Err: fmt.Errorf("unsupported file extension %q", filepath.Ext(name))}
	}
}

// tableRows runs layout detection over a cell matrix and maps data rows onto
// their header labels. Both the CSV and spreadsheet paths funnel through
// here so the heuristics stay in one place.
func tableRows(table [][]string, kind Kind) []RawRow {
	table = trimEmptyRows(table)
	if len(table) == 0 {
		return nil
	}

	layout := DetectLayout(table, kind)
	if layout.Kind == LayoutSectioned {
		return sectionedRows(table)
	}

	header := labelRow(table[layout.HeaderIndex])
	var rows []RawRow
	for _, cells := range table[layout.HeaderIndex+1:] {
		rows = append(rows, mapRow(header, cells))
	}
	return rows
}

// labelRow turns a header row into column labels, substituting synthetic
// column_N labels for blank cells.
func labelRow(cells []string) []string {
	labels := make([]string, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			c = syntheticLabel(i)
		}
		labels[i] = c
	}
	return labels
}

// syntheticLabel is the positional placeholder for column index i.
func syntheticLabel(i int) string {
	return fmt.Sprintf("column_%d", i+1)
}

// mapRow pairs cells with labels, extending with synthetic labels when the
// row is wider than the header.
func mapRow(labels []string, cells []string) RawRow {
	row := RawRow{Values: make(map[string]string, len(cells))}
	for i, cell := range cells {
		label := ""
		if i < len(labels) {
			label = labels[i]
		} else {
			label = syntheticLabel(i)
		}
		row.Labels = append(row.Labels, label)
		row.Values[label] = strings.TrimSpace(cell)
	}
	return row
}

func trimEmptyRows(table [][]string) [][]string {
	var out [][]string
	for _, cells := range table {
		empty := true
		for _, c := range cells {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, cells)
		}
	}
	return out
}
