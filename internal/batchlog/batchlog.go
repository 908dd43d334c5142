// Package batchlog keeps an append-only CSV record of upload batches, so a
// session's reduced record counts (silent validation drops) can be audited
// after the fact.
package batchlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one file of one upload batch. RecordsKept counts the records the
// file contributed after normalization and dedup, so a slot's entries sum to
// the kind's committed total.
type Entry struct {
	Timestamp   time.Time
	BatchID     uuid.UUID
	Kind        string
	File        string
	RowsDecoded int
	RecordsKept int
}

// Header is the CSV header for batch-log.csv.
const Header = "timestamp,batch_id,kind,file,rows_decoded,records_kept"

const (
	numFields  = 6
	logFile    = "batch-log.csv"
	colTime    = 0
	colBatchID = 1
	colKind    = 2
	colFile    = 3
	colDecoded = 4
	colKept    = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colBatchID] = e.BatchID.String()
	row[colKind] = e.Kind
	row[colFile] = e.File
	row[colDecoded] = strconv.Itoa(e.RowsDecoded)
	row[colKept] = strconv.Itoa(e.RecordsKept)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	batchID, err := uuid.Parse(record[colBatchID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing batch ID %q: %w", record[colBatchID], err)
	}

	decoded, err := strconv.Atoi(record[colDecoded])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows_decoded %q: %w", record[colDecoded], err)
	}

	kept, err := strconv.Atoi(record[colKept])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing records_kept %q: %w", record[colKept], err)
	}

	return Entry{
		Timestamp:   ts,
		BatchID:     batchID,
		Kind:        record[colKind],
		File:        record[colFile],
		RowsDecoded: decoded,
		RecordsKept: kept,
	}, nil
}

// Append writes entries to <dir>/batch-log.csv, creating the file and
// header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening batch log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dir>/batch-log.csv. Returns an empty slice
// if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening batch log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading batch log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
