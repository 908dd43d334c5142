// Package identity answers two questions about a record set: which phone
// number belongs to the device owner, and what display name a number maps
// to in the contact directory.
package identity

import (
	"strings"

	"github.com/commtrace-dev/commtrace/internal/model"
)

// UnknownOwner is the sentinel returned when no data allows a guess.
const UnknownOwner = ""

// UnknownLabel tags numbers with no directory entry.
const UnknownLabel = "Unknown"

// ResolveOwner determines the owner's number. Explicit direction tags are
// authoritative: the sender of any owner-sent call, then of any owner-sent
// message. Without tags it falls back to frequency analysis, which can
// misfire on small or skewed datasets; the tie-break (first number
// encountered, stable descending count) is deliberate and pinned by tests.
func ResolveOwner(msgs []model.Message, calls []model.Call) string {
	for _, c := range calls {
		if c.Direction == model.DirectionSender && c.Sender != "" {
			return c.Sender
		}
	}
	for _, m := range msgs {
		if m.Direction == model.DirectionSender && m.Sender != "" {
			return m.Sender
		}
	}

	counts := make(map[string]int)
	var order []string
	tally := func(num string) {
		if num == "" {
			return
		}
		if _, seen := counts[num]; !seen {
			order = append(order, num)
		}
		counts[num]++
	}
	for _, m := range msgs {
		tally(m.Sender)
		tally(m.Receiver)
	}
	for _, c := range calls {
		tally(c.Sender)
		tally(c.Receiver)
	}

	best := UnknownOwner
	bestCount := 0
	for _, num := range order {
		if counts[num] > bestCount {
			best = num
			bestCount = counts[num]
		}
	}
	return best
}

// SameNumber reports whether two numbers refer to the same line: exact
// string match first, then a digits-only comparison to absorb punctuation
// differences like "+1 555-0100" vs "15550100".
func SameNumber(a, b string) bool {
	if a == b {
		return true
	}
	da, db := digitsOnly(a), digitsOnly(b)
	return da != "" && da == db
}

// Counterparty returns the non-owner party of a record. When the owner
// matches neither number the direction tag decides: an owner-sent record's
// counterparty is its receiver.
func Counterparty(owner, sender, receiver string, dir model.Direction) string {
	if owner != UnknownOwner {
		if SameNumber(sender, owner) {
			return receiver
		}
		if SameNumber(receiver, owner) {
			return sender
		}
	}
	if dir == model.DirectionReceiver {
		return sender
	}
	return receiver
}

// Directory is a one-shot phone-number to contact-name lookup.
type Directory struct {
	names  map[string]string
	digits map[string]string
	byFull map[string]string
}

// NewDirectory builds a Directory from contacts; last write wins on
// duplicate numbers.
func NewDirectory(contacts []model.Contact) *Directory {
	d := &Directory{
		names:  make(map[string]string, len(contacts)),
		digits: make(map[string]string, len(contacts)),
		byFull: make(map[string]string, len(contacts)),
	}
	for _, c := range contacts {
		d.names[c.Phone] = c.Name
		if digits := digitsOnly(c.Phone); digits != "" {
			d.digits[digits] = c.Name
		}
		if c.FullName != "" {
			d.byFull[foldName(c.FullName)] = c.Name
		}
	}
	return d
}

// Name returns the contact name for a number, trying exact then digits-only
// matching.
func (d *Directory) Name(number string) (string, bool) {
	if name, ok := d.names[number]; ok {
		return name, true
	}
	if digits := digitsOnly(number); digits != "" {
		if name, ok := d.digits[digits]; ok {
			return name, true
		}
	}
	return "", false
}

// DisplayName returns the contact name, or the Unknown tag carrying the raw
// number.
func (d *Directory) DisplayName(number string) string {
	if name, ok := d.Name(number); ok {
		return name
	}
	return UnknownLabel + " (" + number + ")"
}

// ByFullName matches a bank-transaction counterparty name against the
// contacts' secondary full names and returns the contact's display name.
func (d *Directory) ByFullName(counterparty string) (string, bool) {
	name, ok := d.byFull[foldName(counterparty)]
	return name, ok
}

// Known reports whether a number has a directory entry.
func (d *Directory) Known(number string) bool {
	_, ok := d.Name(number)
	return ok
}

func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
