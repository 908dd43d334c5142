// Package directory manages the contact directory: CSV persistence, lookup,
// and the explicit duplicate-resolution policies of the directory editor.
package directory

import (
	"fmt"
	"os"

	"github.com/commtrace-dev/commtrace/internal/model"
)

// DuplicatePolicy decides what happens when a contact is added under a phone
// number that already has an entry.
type DuplicatePolicy string

const (
	// PolicyReplace overwrites the existing entry.
	PolicyReplace DuplicatePolicy = "replace"
	// PolicyKeepBoth keeps both, suffixing the new name with " (2)",
	// " (3)" and so on.
	PolicyKeepBoth DuplicatePolicy = "keep-both"
	// PolicySkip leaves the existing entry untouched.
	PolicySkip DuplicatePolicy = "skip"
)

// ParsePolicy validates a policy name from a flag or config value.
func ParsePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case PolicyReplace, PolicyKeepBoth, PolicySkip:
		return DuplicatePolicy(s), nil
	}
	return "", fmt.Errorf("unknown duplicate policy %q (want replace, keep-both or skip)", s)
}

// Merge adds a contact to the list under the given duplicate policy and
// returns the updated list. Order of surviving entries is preserved.
func Merge(contacts []model.Contact, c model.Contact, policy DuplicatePolicy) []model.Contact {
	existing := -1
	for i, e := range contacts {
		if e.Phone == c.Phone {
			existing = i
			break
		}
	}
	if existing == -1 {
		return append(contacts, c)
	}

	switch policy {
	case PolicyReplace:
		out := make([]model.Contact, len(contacts))
		copy(out, contacts)
		out[existing] = c
		return out
	case PolicyKeepBoth:
		c.Name = suffixedName(contacts, c.Name)
		return append(contacts, c)
	default: // PolicySkip
		return contacts
	}
}

// suffixedName returns name with the lowest free " (N)" suffix, N >= 2.
func suffixedName(contacts []model.Contact, name string) string {
	taken := make(map[string]bool, len(contacts))
	for _, c := range contacts {
		taken[c.Name] = true
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// Service provides in-memory lookup over the contact directory.
type Service struct {
	contacts []model.Contact
	byPhone  map[string]model.Contact
}

// NewService creates a Service from a slice of contacts. Last write wins on
// duplicate numbers.
func NewService(contacts []model.Contact) *Service {
	byPhone := make(map[string]model.Contact, len(contacts))
	for _, c := range contacts {
		byPhone[c.Phone] = c
	}
	return &Service{contacts: contacts, byPhone: byPhone}
}

// Load reads a contacts CSV file and returns a Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening contact directory: %w", err)
	}
	defer f.Close()

	contacts, err := ReadContacts(f)
	if err != nil {
		return nil, fmt.Errorf("reading contact directory: %w", err)
	}
	return NewService(contacts), nil
}

// Save writes the directory to a contacts CSV file.
func (s *Service) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating contact directory: %w", err)
	}
	defer f.Close()

	if err := WriteContacts(f, s.contacts); err != nil {
		return fmt.Errorf("writing contact directory: %w", err)
	}
	return nil
}

// Add merges a contact under the given policy.
func (s *Service) Add(c model.Contact, policy DuplicatePolicy) {
	s.contacts = Merge(s.contacts, c, policy)
	s.byPhone = make(map[string]model.Contact, len(s.contacts))
	for _, e := range s.contacts {
		s.byPhone[e.Phone] = e
	}
}

// Get returns the contact for a phone number.
func (s *Service) Get(phone string) (model.Contact, bool) {
	c, ok := s.byPhone[phone]
	return c, ok
}

// All returns the directory entries in order.
func (s *Service) All() []model.Contact {
	return s.contacts
}
