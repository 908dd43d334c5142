package directory

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/commtrace-dev/commtrace/internal/model"
)

// Header is the CSV header for contacts.csv.
const Header = "name,phone,full_name"

const (
	numFields   = 3
	colName     = 0
	colPhone    = 1
	colFullName = 2
)

// ReadContacts reads contacts.csv.
func ReadContacts(r io.Reader) ([]model.Contact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading contacts CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var contacts []model.Contact
	for i, rec := range records[1:] {
		c, err := UnmarshalContact(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// WriteContacts writes contacts.csv (including header).
func WriteContacts(w io.Writer, contacts []model.Contact) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"name", "phone", "full_name"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range contacts {
		if err := cw.Write(MarshalContact(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalContact converts a Contact to a CSV row.
func MarshalContact(c model.Contact) []string {
	row := make([]string, numFields)
	row[colName] = c.Name
	row[colPhone] = c.Phone
	row[colFullName] = c.FullName
	return row
}

// UnmarshalContact converts a CSV row to a Contact.
func UnmarshalContact(record []string) (model.Contact, error) {
	if len(record) != numFields {
		return model.Contact{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colName] == "" || record[colPhone] == "" {
		return model.Contact{}, fmt.Errorf("contact needs both name and phone: %v", record)
	}

	return model.Contact{
		Name:     record[colName],
		Phone:    record[colPhone],
		FullName: record[colFullName],
	}, nil
}
