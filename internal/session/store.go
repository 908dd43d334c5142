// Package session owns the application state: the canonical record set, the
// single user-facing error message, and the upload pipeline that replaces
// the state atomically per batch.
package session

import (
	"github.com/commtrace-dev/commtrace/internal/directory"
	"github.com/commtrace-dev/commtrace/internal/model"
	"github.com/commtrace-dev/commtrace/internal/stats"
)

// Store holds one session's ParsedData with an explicit mutation contract:
// replaced wholesale on upload or import, merged field-by-field on contact
// edits, reset to empty on clear or batch failure. Derived statistics are
// recomputed on every read, never cached across mutations.
type Store struct {
	data   model.ParsedData
	limits stats.Limits
	owner  string
	errMsg string
}

// NewStore creates an empty session store.
func NewStore(limits stats.Limits) *Store {
	return &Store{limits: limits}
}

// PinOwner fixes the owner number instead of resolving it from the records.
func (s *Store) PinOwner(number string) {
	s.owner = number
}

// Data returns the current record set.
func (s *Store) Data() model.ParsedData {
	return s.data
}

// Replace commits a fully-processed record set, clearing any earlier error.
// Upload batches and session imports land here, and only here.
func (s *Store) Replace(data model.ParsedData) {
	s.data = data
	s.errMsg = ""
}

// Reset clears the session to empty.
func (s *Store) Reset() {
	s.data = model.ParsedData{}
	s.errMsg = ""
}

// Fail resets the session and records the human-readable failure message.
// A failed batch never leaves partial data behind.
func (s *Store) Fail(msg string) {
	s.data = model.ParsedData{}
	s.errMsg = msg
}

// Err returns the current failure message, empty when the session is
// healthy.
func (s *Store) Err() string {
	return s.errMsg
}

// EditContact merges a single contact into the session under the given
// duplicate policy. This is the only field-level mutation the store allows.
func (s *Store) EditContact(c model.Contact, policy directory.DuplicatePolicy) {
	s.data.Contacts = directory.Merge(s.data.Contacts, c, policy)
}

// Communication recomputes the message/call aggregates.
func (s *Store) Communication() stats.CommunicationStats {
	if s.owner != "" {
		return stats.CommunicationWithOwner(s.data, s.owner, s.limits)
	}
	return stats.Communication(s.data, s.limits)
}

// Bank recomputes the bank aggregates.
func (s *Store) Bank() stats.BankStats {
	return stats.Bank(s.data.Bank, s.data.Contacts, s.limits)
}
