package decode

import "strings"

// LayoutKind tags the physical shape detected for a file.
type LayoutKind int

const (
	// LayoutStandard is a single table whose header row was recognized by
	// a known column-name pattern.
	LayoutStandard LayoutKind = iota
	// LayoutSectioned is a multi-record owner export: section marker lines
	// separate per-kind tables sharing a metadata preamble.
	LayoutSectioned
	// LayoutHeaderless means no pattern matched; row 0 is assumed to be
	// the header.
	LayoutHeaderless
)

// Layout is the result of the one-shot detection step consumed uniformly by
// the rest of the decoder.
type Layout struct {
	Kind        LayoutKind
	HeaderIndex int
}

// Markers recognized in sectioned owner exports. The normalizer also uses
// these to reject rows that echo export metadata.
const (
	SectionMessages = "MESSAGES"
	SectionCalls    = "CALLS"
	OwnerMetaPrefix = "Phone Number:"
)

// MetadataMarkers are substrings whose presence in a cell value marks the
// row as export metadata rather than data.
var MetadataMarkers = []string{OwnerMetaPrefix, SectionMessages, SectionCalls}

// headerScanLimit bounds the search for section markers and header rows.
const headerScanLimit = 20

// bankHeaderScanLimit bounds the search for the bank statement header row.
const bankHeaderScanLimit = 10

// headerPatterns are token sets that identify a header row when every token
// appears (case-insensitively) somewhere in the row. Ordered by specificity.
var headerPatterns = [][]string{
	{"sender", "receiver", "message"},
	{"sender", "receiver", "call"},
	{"sender", "receiver", "time"},
	{"sender", "target", "message"},
	{"from", "to", "message"},
	{"from", "to", "call"},
	{"from", "to", "time"},
	{"name", "phone"},
	{"name", "number"},
}

// bankHeaderLabels must all appear, verbatim per source convention, in the
// bank statement header row.
var bankHeaderLabels = []string{"From", "Amount", "Date"}

// DetectLayout inspects the leading rows of a table and classifies its
// physical shape. For bank files the dedicated header scan applies instead
// of the generic patterns.
func DetectLayout(table [][]string, kind Kind) Layout {
	if isSectioned(table) {
		return Layout{Kind: LayoutSectioned}
	}

	if kind == KindBank {
		if idx, ok := bankHeaderIndex(table); ok {
			return Layout{Kind: LayoutStandard, HeaderIndex: idx}
		}
		return Layout{Kind: LayoutHeaderless, HeaderIndex: 0}
	}

	for i, cells := range table {
		if i >= headerScanLimit {
			break
		}
		if matchesHeaderPattern(cells) {
			return Layout{Kind: LayoutStandard, HeaderIndex: i}
		}
	}
	return Layout{Kind: LayoutHeaderless, HeaderIndex: 0}
}

// isSectioned reports whether any of the first rows is a section marker.
func isSectioned(table [][]string) bool {
	for i, cells := range table {
		if i >= headerScanLimit {
			break
		}
		if _, ok := sectionKind(cells); ok {
			return true
		}
	}
	return false
}

// sectionKind reports the record kind a marker row opens, if it is one.
// Marker rows carry the marker in their first non-empty cell.
func sectionKind(cells []string) (Kind, bool) {
	for _, c := range cells {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		switch c {
		case SectionMessages:
			return KindMessage, true
		case SectionCalls:
			return KindCall, true
		}
		return "", false
	}
	return "", false
}

// ownerNumber extracts the owner's number from a metadata row like
// "Phone Number: +15550100", or "" when the row is not one.
func ownerNumber(cells []string) string {
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if rest, ok := strings.CutPrefix(c, OwnerMetaPrefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

func matchesHeaderPattern(cells []string) bool {
	joined := strings.ToLower(strings.Join(cells, " "))
	for _, pattern := range headerPatterns {
		all := true
		for _, token := range pattern {
			if !strings.Contains(joined, token) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// bankHeaderIndex scans the first rows for one containing every bank header
// label. Labels match case-sensitively, per the source convention.
func bankHeaderIndex(table [][]string) (int, bool) {
	for i, cells := range table {
		if i >= bankHeaderScanLimit {
			break
		}
		joined := strings.Join(cells, " ")
		all := true
		for _, label := range bankHeaderLabels {
			if !strings.Contains(joined, label) {
				all = false
				break
			}
		}
		if all {
			return i, true
		}
	}
	return 0, false
}

// sectionedRows parses a sectioned owner export: each marker line opens a
// section whose next row is that section's header; data rows are tagged with
// the section kind. The owner-metadata line, when present, lets each row be
// classified as sent or received.
func sectionedRows(table [][]string) []RawRow {
	var (
		rows    []RawRow
		labels  []string
		current Kind
		owner   string
	)

	for _, cells := range table {
		if num := ownerNumber(cells); num != "" {
			owner = num
			continue
		}
		if kind, ok := sectionKind(cells); ok {
			current = kind
			labels = nil
			continue
		}
		if current == "" {
			// Preamble before the first marker.
			continue
		}
		if labels == nil {
			labels = labelRow(cells)
			continue
		}

		row := mapRow(labels, cells)
		row.KindHint = current
		row.DirectionHint = directionHint(row, owner)
		rows = append(rows, row)
	}
	return rows
}

// directionHint classifies a row against the owner number from the export
// preamble. Empty when the owner is unknown or appears in neither party.
func directionHint(row RawRow, owner string) string {
	if owner == "" {
		return ""
	}
	for _, label := range row.Labels {
		v := row.Values[label]
		if v != owner {
			continue
		}
		lower := strings.ToLower(label)
		switch {
		case strings.Contains(lower, "sender"), strings.Contains(lower, "from"):
			return "Sender"
		case strings.Contains(lower, "receiver"), strings.Contains(lower, "to"), strings.Contains(lower, "target"):
			return "Receiver"
		}
	}
	return ""
}
