package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/commtrace-dev/commtrace/internal/identity"
	"github.com/commtrace-dev/commtrace/internal/model"
)

// ReasonTotal is one expense bucket: the free-text reason and the absolute
// total spent under it.
type ReasonTotal struct {
	Reason string          `json:"reason"`
	Total  decimal.Decimal `json:"total"`
}

// BalancePoint is one step of the balance history.
type BalancePoint struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// BankStats holds the derived bank statement aggregates.
type BankStats struct {
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	CurrentBalance decimal.Decimal

	TopExpenseReasons []ReasonTotal
	TopCounterparties []Point
	BalanceHistory    []BalancePoint
}

// bankDateLayouts are tried in order when ranking statement dates.
var bankDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// Bank computes income/expense totals, the current balance, the top expense
// reasons, counterparty rankings and a down-sampled balance history.
// Counterparty names are cross-referenced against the contacts' secondary
// full names, so a matched counterparty shows under its contact name.
func Bank(records []model.BankRecord, contacts []model.Contact, limits Limits) BankStats {
	var stats BankStats
	stats.TotalIncome = decimal.Zero
	stats.TotalExpense = decimal.Zero
	stats.CurrentBalance = decimal.Zero
	if len(records) == 0 {
		return stats
	}

	reasons := make(map[string]decimal.Decimal)
	var reasonOrder []string
	counterparties := newTally()

	latestIdx := -1
	var latest time.Time

	for i, r := range records {
		counterparties.add(strings.TrimSpace(r.Counterparty))
		switch {
		case r.Amount.IsPositive():
			stats.TotalIncome = stats.TotalIncome.Add(r.Amount)
		case r.Amount.IsNegative():
			stats.TotalExpense = stats.TotalExpense.Add(r.Amount.Abs())
			reason := strings.TrimSpace(r.Reason)
			if reason != "" {
				if _, seen := reasons[reason]; !seen {
					reasonOrder = append(reasonOrder, reason)
				}
				reasons[reason] = reasons[reason].Add(r.Amount.Abs())
			}
		}

		if t, ok := parseBankDate(r.Date); ok {
			if latestIdx == -1 || t.After(latest) {
				latest = t
				latestIdx = i
			}
		}
	}

	// No parseable date at all: the last row stands in for "most recent".
	if latestIdx == -1 {
		latestIdx = len(records) - 1
	}
	stats.CurrentBalance = records[latestIdx].Balance

	sort.SliceStable(reasonOrder, func(i, j int) bool {
		return reasons[reasonOrder[i]].GreaterThan(reasons[reasonOrder[j]])
	})
	if len(reasonOrder) > limits.ExpenseReasons {
		reasonOrder = reasonOrder[:limits.ExpenseReasons]
	}
	for _, reason := range reasonOrder {
		stats.TopExpenseReasons = append(stats.TopExpenseReasons, ReasonTotal{Reason: reason, Total: reasons[reason]})
	}

	dir := identity.NewDirectory(contacts)
	stats.TopCounterparties = counterparties.ranked(limits.TopSingle, func(cp string) string {
		if name, ok := dir.ByFullName(cp); ok {
			return TruncateName(name, limits.NameBudget)
		}
		return TruncateName(cp, limits.NameBudget)
	})

	stats.BalanceHistory = balanceHistory(records, limits.BalancePoints)
	return stats
}

// balanceHistory down-samples the running balance to at most maxPoints by
// fixed-stride subsampling.
func balanceHistory(records []model.BankRecord, maxPoints int) []BalancePoint {
	stride := 1
	if maxPoints > 0 && len(records) > maxPoints {
		stride = (len(records) + maxPoints - 1) / maxPoints
	}

	var points []BalancePoint
	for i := 0; i < len(records); i += stride {
		points = append(points, BalancePoint{Date: records[i].Date, Balance: records[i].Balance})
	}
	return points
}

func parseBankDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range bankDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
