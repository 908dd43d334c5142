package session

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/commtrace-dev/commtrace/internal/model"
	"github.com/commtrace-dev/commtrace/internal/normalize"
)

// Export writes the session's record set as a JSON document, field names
// matching the canonical schema exactly.
func Export(w io.Writer, data model.ParsedData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return nil
}

// Import reads a session document, re-sanitizes every string field and
// re-validates required fields. Imported data is as untrusted as freshly
// parsed files; records failing validation are dropped, not fatal.
func Import(r io.Reader) (model.ParsedData, error) {
	var data model.ParsedData
	dec := json.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return model.ParsedData{}, fmt.Errorf("decoding session: %w", err)
	}

	normalize.SanitizeData(&data)
	return revalidate(data), nil
}

// revalidate drops imported records missing their required fields.
func revalidate(data model.ParsedData) model.ParsedData {
	var out model.ParsedData

	for _, m := range data.Messages {
		if blank(m.Sender) || blank(m.Receiver) || blank(m.Body) || blank(m.Timestamp) {
			continue
		}
		if m.Direction != model.DirectionReceiver {
			m.Direction = model.DirectionSender
		}
		out.Messages = append(out.Messages, m)
	}
	for _, c := range data.Calls {
		if blank(c.Sender) || blank(c.Receiver) || blank(c.Timestamp) {
			continue
		}
		if c.Direction != model.DirectionReceiver {
			c.Direction = model.DirectionSender
		}
		out.Calls = append(out.Calls, c)
	}
	for _, c := range data.Contacts {
		if blank(c.Name) || blank(c.Phone) {
			continue
		}
		out.Contacts = append(out.Contacts, c)
	}
	for _, b := range data.Bank {
		if blank(b.Counterparty) || blank(b.Date) {
			continue
		}
		out.Bank = append(out.Bank, b)
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
