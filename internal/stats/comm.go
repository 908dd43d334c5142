// Package stats derives display-ready aggregates from a normalized record
// set. Every function is pure: stats are recomputed whenever the session
// data changes, never stored alongside it.
package stats

import (
	"sort"
	"strings"
	"unicode"

	"github.com/commtrace-dev/commtrace/internal/identity"
	"github.com/commtrace-dev/commtrace/internal/model"
)

// Limits control ranking depth and display truncation.
type Limits struct {
	TopSingle      int // single-metric rankings (texts, calls)
	TopCombined    int // combined-interaction rankings
	NameBudget     int // contact name truncation, in runes
	ExpenseReasons int // top expense reasons
	BalancePoints  int // balance history cap before down-sampling
}

// DefaultLimits are the stock display limits.
func DefaultLimits() Limits {
	return Limits{
		TopSingle:      8,
		TopCombined:    10,
		NameBudget:     14,
		ExpenseReasons: 5,
		BalancePoints:  50,
	}
}

// Point is one ranked entry: a display label and its count.
type Point struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DailyCount is one day's activity.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CommunicationStats holds every message/call aggregate the presentation
// layer consumes.
type CommunicationStats struct {
	Owner string

	MessagesPerDay []DailyCount
	CallsPerDay    []DailyCount

	TopTextedContacts         []Point
	TopCalledContacts         []Point
	TopContactsByInteractions []Point

	TopTextedUnknown         []Point
	TopCalledUnknown         []Point
	TopUnknownByInteractions []Point

	KnownDailyActivity   []DailyCount
	UnknownDailyActivity []DailyCount
}

// Communication computes all message/call aggregates for a record set,
// resolving the owner number from the records themselves.
func Communication(data model.ParsedData, limits Limits) CommunicationStats {
	return CommunicationWithOwner(data, identity.ResolveOwner(data.Messages, data.Calls), limits)
}

// CommunicationWithOwner computes the aggregates against a pinned owner
// number, bypassing resolution.
func CommunicationWithOwner(data model.ParsedData, owner string, limits Limits) CommunicationStats {
	dir := identity.NewDirectory(data.Contacts)

	texted := newTally()
	called := newTally()
	combined := newTally()
	textedUnknown := newTally()
	calledUnknown := newTally()
	combinedUnknown := newTally()

	msgDays := newTally()
	callDays := newTally()
	knownDays := newTally()
	unknownDays := newTally()

	for _, m := range data.Messages {
		day := datePart(m.Timestamp)
		msgDays.add(day)

		other := identity.Counterparty(owner, m.Sender, m.Receiver, m.Direction)
		if identity.SameNumber(other, owner) {
			continue
		}
		if dir.Known(other) {
			texted.add(other)
			combined.add(other)
			knownDays.add(day)
		} else {
			textedUnknown.add(other)
			combinedUnknown.add(other)
			unknownDays.add(day)
		}
	}

	for _, c := range data.Calls {
		day := datePart(c.Timestamp)
		callDays.add(day)

		other := identity.Counterparty(owner, c.Sender, c.Receiver, c.Direction)
		if identity.SameNumber(other, owner) {
			continue
		}
		if dir.Known(other) {
			called.add(other)
			combined.add(other)
			knownDays.add(day)
		} else {
			calledUnknown.add(other)
			combinedUnknown.add(other)
			unknownDays.add(day)
		}
	}

	contactLabel := func(number string) string {
		return TruncateName(dir.DisplayName(number), limits.NameBudget)
	}

	return CommunicationStats{
		Owner:          owner,
		MessagesPerDay: msgDays.daily(),
		CallsPerDay:    callDays.daily(),

		TopTextedContacts:         texted.ranked(limits.TopSingle, contactLabel),
		TopCalledContacts:         called.ranked(limits.TopSingle, contactLabel),
		TopContactsByInteractions: combined.ranked(limits.TopCombined, contactLabel),

		TopTextedUnknown:         textedUnknown.ranked(limits.TopSingle, ElideNumber),
		TopCalledUnknown:         calledUnknown.ranked(limits.TopSingle, ElideNumber),
		TopUnknownByInteractions: combinedUnknown.ranked(limits.TopCombined, ElideNumber),

		KnownDailyActivity:   knownDays.daily(),
		UnknownDailyActivity: unknownDays.daily(),
	}
}

// tally counts occurrences while remembering first-seen order, so rankings
// break ties by stable input order with no secondary key.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if key == "" {
		return
	}
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// ranked returns the top-n keys by descending count, labeled for display.
func (t *tally) ranked(n int, label func(string) string) []Point {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}

	var points []Point
	for _, k := range keys {
		points = append(points, Point{Name: label(k), Value: t.counts[k]})
	}
	return points
}

// daily returns per-day counts in first-seen order.
func (t *tally) daily() []DailyCount {
	var out []DailyCount
	for _, day := range t.order {
		out = append(out, DailyCount{Date: day, Count: t.counts[day]})
	}
	return out
}

// datePart returns the date portion of a loosely-formatted timestamp: the
// text before the first whitespace.
func datePart(ts string) string {
	ts = strings.TrimSpace(ts)
	if i := strings.IndexFunc(ts, unicode.IsSpace); i >= 0 {
		return ts[:i]
	}
	return ts
}

// TruncateName trims a display name to budget runes, appending an ellipsis
// when anything was cut.
func TruncateName(name string, budget int) string {
	runes := []rune(name)
	if len(runes) <= budget {
		return name
	}
	return string(runes[:budget]) + "…"
}

// ElideNumber shortens a long phone number in the middle, keeping the
// leading and trailing digits that identify it.
func ElideNumber(number string) string {
	const keep = 5
	runes := []rune(number)
	if len(runes) <= 2*keep+1 {
		return number
	}
	return string(runes[:keep]) + "…" + string(runes[len(runes)-keep:])
}
