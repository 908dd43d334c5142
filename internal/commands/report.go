package commands

import (
	"fmt"
	"io"

	"github.com/commtrace-dev/commtrace/internal/identity"
	"github.com/commtrace-dev/commtrace/internal/session"
	"github.com/commtrace-dev/commtrace/internal/stats"
)

// printReport renders the derived statistics as plain text.
func printReport(w io.Writer, store *session.Store) {
	data := store.Data()
	comm := store.Communication()

	fmt.Fprintf(w, "Records: %d messages, %d calls, %d contacts, %d bank\n",
		len(data.Messages), len(data.Calls), len(data.Contacts), len(data.Bank))

	owner := comm.Owner
	if owner == identity.UnknownOwner {
		owner = "(unknown)"
	}
	fmt.Fprintf(w, "Owner number: %s\n", owner)

	printDaily(w, "Messages per day", comm.MessagesPerDay)
	printDaily(w, "Calls per day", comm.CallsPerDay)

	printRanking(w, "Top texted contacts", comm.TopTextedContacts)
	printRanking(w, "Top called contacts", comm.TopCalledContacts)
	printRanking(w, "Top contacts by interactions", comm.TopContactsByInteractions)
	printRanking(w, "Top texted unknown numbers", comm.TopTextedUnknown)
	printRanking(w, "Top called unknown numbers", comm.TopCalledUnknown)
	printRanking(w, "Top unknown numbers by interactions", comm.TopUnknownByInteractions)

	printDaily(w, "Daily activity (known contacts)", comm.KnownDailyActivity)
	printDaily(w, "Daily activity (unknown numbers)", comm.UnknownDailyActivity)

	if len(data.Bank) > 0 {
		bank := store.Bank()
		fmt.Fprintf(w, "\nBank summary\n")
		fmt.Fprintf(w, "  income:  %s\n", bank.TotalIncome.StringFixed(2))
		fmt.Fprintf(w, "  expense: %s\n", bank.TotalExpense.StringFixed(2))
		fmt.Fprintf(w, "  balance: %s\n", bank.CurrentBalance.StringFixed(2))
		if len(bank.TopCounterparties) > 0 {
			fmt.Fprintf(w, "  top counterparties:\n")
			for _, p := range bank.TopCounterparties {
				fmt.Fprintf(w, "    %s: %d\n", p.Name, p.Value)
			}
		}
		if len(bank.TopExpenseReasons) > 0 {
			fmt.Fprintf(w, "  top expense reasons:\n")
			for _, r := range bank.TopExpenseReasons {
				fmt.Fprintf(w, "    %s: %s\n", r.Reason, r.Total.StringFixed(2))
			}
		}
	}
}

func printDaily(w io.Writer, title string, days []stats.DailyCount) {
	if len(days) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, d := range days {
		fmt.Fprintf(w, "  %s: %d\n", d.Date, d.Count)
	}
}

func printRanking(w io.Writer, title string, points []stats.Point) {
	if len(points) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, p := range points {
		fmt.Fprintf(w, "  %s: %d\n", p.Name, p.Value)
	}
}
