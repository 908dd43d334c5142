package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRecordID returns a synthetic record ID like "bank-0042".
func FormatRecordID(kind string, seq int) string {
	return fmt.Sprintf("%s-%04d", kind, seq)
}

// ParseRecordID parses "bank-0042" into kind and sequence.
func ParseRecordID(recordID string) (kind string, seq int, err error) {
	idx := strings.LastIndex(recordID, "-")
	if idx <= 0 || idx == len(recordID)-1 {
		return "", 0, fmt.Errorf("invalid record ID format: %q", recordID)
	}

	seq, err = strconv.Atoi(recordID[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in record ID %q: %w", recordID, err)
	}
	return recordID[:idx], seq, nil
}
