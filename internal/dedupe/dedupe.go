// Package dedupe collapses records describing the same real-world event.
// Exports overlap constantly: the same file uploaded twice, or the sender's
// and receiver's copies of one message. With no reliable external IDs the
// only workable key is a normalized content fingerprint.
package dedupe

import (
	"strings"
	"time"
	"unicode"

	"github.com/commtrace-dev/commtrace/internal/model"
)

// fingerprint fields are joined with a pipe. Every normalization strips the
// pipe from its field (numbers keep digits only, text and raw timestamps
// drop it outright), so a literal one can never shift field boundaries.
const fingerprintSep = "|"

const sepRune = '|'

// timeLayouts are tried in order when canonicalizing a timestamp.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"01/02/2006 15:04",
	"01/02/2006 3:04 PM",
	"Jan 2 2006 15:04",
	"Jan 2 2006 3:04pm",
	"Jan 2, 2006 3:04 PM",
	"2006-01-02",
	"01/02/2006",
}

// Messages removes duplicate messages, preserving first-seen order.
func Messages(msgs []model.Message) []model.Message {
	seen := make(map[string]bool, len(msgs))
	var out []model.Message
	for _, m := range msgs {
		fp := Fingerprint(m.Sender, m.Receiver, m.Body, m.Timestamp)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, m)
	}
	return out
}

// Calls removes duplicate calls, preserving first-seen order.
func Calls(calls []model.Call) []model.Call {
	seen := make(map[string]bool, len(calls))
	var out []model.Call
	for _, c := range calls {
		fp := Fingerprint(c.Sender, c.Receiver, c.Info, c.Timestamp)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, c)
	}
	return out
}

// Contacts keeps the first contact per verbatim phone number.
func Contacts(contacts []model.Contact) []model.Contact {
	seen := make(map[string]bool, len(contacts))
	var out []model.Contact
	for _, c := range contacts {
		if seen[c.Phone] {
			continue
		}
		seen[c.Phone] = true
		out = append(out, c)
	}
	return out
}

// Fingerprint builds the content key for a message or call: both party
// numbers reduced to digits, the text lowercased and stripped of
// whitespace, and the timestamp canonicalized.
func Fingerprint(sender, receiver, text, timestamp string) string {
	return strings.Join([]string{
		digitsOnly(sender),
		digitsOnly(receiver),
		normalizeText(text),
		normalizeTime(timestamp),
	}, fingerprintSep)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func normalizeText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == sepRune {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// normalizeTime canonicalizes a parseable timestamp to RFC 3339 so differing
// source formats collide; unparseable strings fall back to lowercase with
// the separator stripped.
func normalizeTime(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return strings.ReplaceAll(strings.ToLower(s), fingerprintSep, "")
}
