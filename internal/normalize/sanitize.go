package normalize

import (
	"html"

	"github.com/commtrace-dev/commtrace/internal/model"
)

// Sanitize HTML-escapes a string sourced from an uploaded file or imported
// session. Every free-text field passes through here before it becomes part
// of session state; there is no opt-out.
func Sanitize(s string) string {
	return html.EscapeString(s)
}

// SanitizeData re-escapes every string field of an imported record set.
// Imported sessions are as untrusted as freshly parsed files.
func SanitizeData(d *model.ParsedData) {
	for i := range d.Messages {
		m := &d.Messages[i]
		m.ID = Sanitize(m.ID)
		m.Sender = Sanitize(m.Sender)
		m.Receiver = Sanitize(m.Receiver)
		m.Body = Sanitize(m.Body)
		m.Timestamp = Sanitize(m.Timestamp)
	}
	for i := range d.Calls {
		c := &d.Calls[i]
		c.ID = Sanitize(c.ID)
		c.Sender = Sanitize(c.Sender)
		c.Receiver = Sanitize(c.Receiver)
		c.Info = Sanitize(c.Info)
		c.Timestamp = Sanitize(c.Timestamp)
	}
	for i := range d.Contacts {
		c := &d.Contacts[i]
		c.Name = Sanitize(c.Name)
		c.Phone = Sanitize(c.Phone)
		c.FullName = Sanitize(c.FullName)
	}
	for i := range d.Bank {
		b := &d.Bank[i]
		b.ID = Sanitize(b.ID)
		b.Counterparty = Sanitize(b.Counterparty)
		b.RoutingCode = Sanitize(b.RoutingCode)
		b.Reason = Sanitize(b.Reason)
		b.Date = Sanitize(b.Date)
	}
}
