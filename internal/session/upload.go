package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/commtrace-dev/commtrace/internal/batchlog"
	"github.com/commtrace-dev/commtrace/internal/decode"
	"github.com/commtrace-dev/commtrace/internal/dedupe"
	"github.com/commtrace-dev/commtrace/internal/normalize"
)

// File is one uploaded file: its name (kept for error messages) and its
// fully materialized content.
type File struct {
	Name string
	Data []byte
}

// Slots maps record kinds to their uploaded files. A missing key is a no-op
// for that kind; a present key with an empty list clears that kind.
type Slots map[decode.Kind][]File

// slotOrder fixes the processing order of a batch.
var slotOrder = []decode.Kind{decode.KindMessage, decode.KindCall, decode.KindContact, decode.KindBank}

// BatchResult reports what one upload batch produced.
type BatchResult struct {
	BatchID uuid.UUID
	Counts  map[decode.Kind]int
}

// Uploader runs upload batches against a Store. Files within a slot are
// processed sequentially and concatenated in upload order before
// normalization; the store is only touched once the whole batch succeeded.
type Uploader struct {
	store  *Store
	logger *slog.Logger
	logDir string
}

// NewUploader creates an Uploader. logDir may be empty to disable the batch
// audit log.
func NewUploader(store *Store, logger *slog.Logger, logDir string) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{store: store, logger: logger, logDir: logDir}
}

// Upload processes one batch. On any decode failure the whole batch aborts,
// the session is reset, and the store carries a message naming the file.
// Zero valid records for a kind is not an error: the session simply ends up
// holding only the kinds that produced data.
func (u *Uploader) Upload(slots Slots) (BatchResult, error) {
	result := BatchResult{BatchID: uuid.New(), Counts: make(map[decode.Kind]int)}
	staged := u.store.Data()
	var logEntries []batchlog.Entry

	for _, kind := range slotOrder {
		files, ok := slots[kind]
		if !ok {
			continue
		}

		var rows []decode.RawRow
		perFile := make([]int, len(files))
		for i, f := range files {
			decoded, err := decode.File(f.Name, f.Data, kind)
			if err != nil {
				msg := fmt.Sprintf("could not read %s: file is unreadable or in an unsupported format", f.Name)
				u.logger.Error("decode failed", "file", f.Name, "kind", string(kind), "error", err)
				u.store.Fail(msg)
				return result, err
			}
			perFile[i] = len(decoded)
			rows = append(rows, decoded...)
			u.logger.Info("decoded file", "file", f.Name, "kind", string(kind), "rows", len(decoded))
		}

		count := 0
		var keptAt func(n int) int
		switch kind {
		case decode.KindMessage:
			staged.Messages = dedupe.Messages(normalize.Messages(rows))
			count = len(staged.Messages)
			keptAt = func(n int) int { return len(dedupe.Messages(normalize.Messages(rows[:n]))) }
		case decode.KindCall:
			staged.Calls = dedupe.Calls(normalize.Calls(rows))
			count = len(staged.Calls)
			keptAt = func(n int) int { return len(dedupe.Calls(normalize.Calls(rows[:n]))) }
		case decode.KindContact:
			staged.Contacts = dedupe.Contacts(normalize.Contacts(rows))
			count = len(staged.Contacts)
			keptAt = func(n int) int { return len(dedupe.Contacts(normalize.Contacts(rows[:n]))) }
		case decode.KindBank:
			staged.Bank = normalize.Bank(rows)
			count = len(staged.Bank)
			keptAt = func(n int) int { return len(normalize.Bank(rows[:n])) }
		}
		result.Counts[kind] = count

		// Each file's kept count is its delta against the preceding files'
		// prefix: a row deduplicated across files lands on the file that
		// repeated it.
		bound, prevKept := 0, 0
		for i, f := range files {
			bound += perFile[i]
			kept := keptAt(bound)
			logEntries = append(logEntries, batchlog.Entry{
				Timestamp:   time.Now(),
				BatchID:     result.BatchID,
				Kind:        string(kind),
				File:        f.Name,
				RowsDecoded: perFile[i],
				RecordsKept: kept - prevKept,
			})
			prevKept = kept
		}
	}

	u.store.Replace(staged)

	if u.logDir != "" && len(logEntries) > 0 {
		if err := batchlog.Append(u.logDir, logEntries); err != nil {
			// The batch is already committed at this point.
			u.logger.Warn("batch log append failed", "error", err)
		}
	}
	return result, nil
}
