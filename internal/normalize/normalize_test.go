package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commtrace-dev/commtrace/internal/decode"
	"github.com/commtrace-dev/commtrace/internal/model"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func row(pairs ...string) decode.RawRow {
	r := decode.RawRow{Values: make(map[string]string)}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Labels = append(r.Labels, pairs[i])
		r.Values[pairs[i]] = pairs[i+1]
	}
	return r
}

func TestMessages_AliasFallback(t *testing.T) {
	rows := []decode.RawRow{
		row("Sender Number", "A", "Receiver Number", "B", "Message Body", "hi", "Timestamp", "2024-01-01 10:00"),
		row("From", "C", "To", "D", "Content", "yo", "Date", "2024-01-02 10:00"),
		row("column_1", "E", "column_2", "F", "column_3", "sup", "column_4", "2024-01-03 10:00"),
	}

	msgs := Messages(rows)
	require.Len(t, msgs, 3)
	assert.Equal(t, "hi", msgs[0].Body)
	assert.Equal(t, "yo", msgs[1].Body)
	assert.Equal(t, "sup", msgs[2].Body)
}

func TestMessages_HeaderEchoRejected(t *testing.T) {
	rows := []decode.RawRow{
		// Repeated header line mapped as data.
		row("Sender Number", "Sender Number", "Receiver Number", "Receiver Number",
			"Message Body", "Message Body", "Timestamp", "Timestamp"),
		// Headerless file whose first data row is really the header.
		row("column_1", "Sender Number", "column_2", "Receiver Number",
			"column_3", "Message Body", "column_4", "Timestamp"),
		row("Sender Number", "A", "Receiver Number", "B", "Message Body", "hi", "Timestamp", "2024-01-01 10:00"),
	}

	msgs := Messages(rows)
	require.Len(t, msgs, 1)
	assert.Equal(t, "A", msgs[0].Sender)
}

func TestMessages_MetadataMarkerRejected(t *testing.T) {
	rows := []decode.RawRow{
		row("Sender Number", "Phone Number: +15550100", "Receiver Number", "B",
			"Message Body", "x", "Timestamp", "2024-01-01 10:00"),
		row("Sender Number", "A", "Receiver Number", "B", "Message Body", "MESSAGES", "Timestamp", "2024-01-01 10:00"),
	}
	assert.Empty(t, Messages(rows))
}

func TestMessages_RequiredFieldGate(t *testing.T) {
	rows := []decode.RawRow{
		row("Sender Number", "A", "Receiver Number", "B", "Message Body", "", "Timestamp", "2024-01-01 10:00"),
		row("Sender Number", "A", "Receiver Number", "B", "Message Body", "hi", "Timestamp", ""),
		row("Sender Number", "A", "Receiver Number", "B", "Message Body", "hi", "Timestamp", "2024-01-01 10:00"),
	}

	msgs := Messages(rows)
	require.Len(t, msgs, 1)
	for _, m := range msgs {
		assert.NotEmpty(t, m.Sender)
		assert.NotEmpty(t, m.Receiver)
		assert.NotEmpty(t, m.Body)
		assert.NotEmpty(t, m.Timestamp)
	}
}

func TestMessages_KindHintMismatchDropped(t *testing.T) {
	r := row("Sender", "A", "Receiver", "B", "Message", "hi", "Timestamp", "2024-01-01 10:00")
	r.KindHint = decode.KindCall
	assert.Empty(t, Messages([]decode.RawRow{r}))

	r.KindHint = decode.KindMessage
	assert.Len(t, Messages([]decode.RawRow{r}), 1)
}

func TestMessages_Direction(t *testing.T) {
	explicit := row("Sender", "A", "Receiver", "B", "Message", "hi",
		"Timestamp", "2024-01-01 10:00", "Type", "Receiver")
	hinted := row("Sender", "A", "Receiver", "B", "Message", "hi", "Timestamp", "2024-01-01 10:00")
	hinted.DirectionHint = "Receiver"
	bare := row("Sender", "A", "Receiver", "B", "Message", "hi", "Timestamp", "2024-01-01 10:00")

	msgs := Messages([]decode.RawRow{explicit, hinted, bare})
	require.Len(t, msgs, 3)
	assert.Equal(t, model.DirectionReceiver, msgs[0].Direction)
	assert.Equal(t, model.DirectionReceiver, msgs[1].Direction)
	assert.Equal(t, model.DirectionSender, msgs[2].Direction, "direction defaults to Sender")
}

func TestMessages_Sanitized(t *testing.T) {
	rows := []decode.RawRow{
		row("Sender", "A", "Receiver", "B",
			"Message", "<script>alert(1)</script>", "Timestamp", "2024-01-01 10:00"),
	}

	msgs := Messages(rows)
	require.Len(t, msgs, 1)
	assert.NotContains(t, msgs[0].Body, "<script>")
	assert.Contains(t, msgs[0].Body, "&lt;script&gt;")
}

func TestCalls_InfoOptional(t *testing.T) {
	rows := []decode.RawRow{
		row("Sender", "A", "Receiver", "B", "Timestamp", "2024-01-01 10:00"),
		row("Sender", "A", "Receiver", "B", "Call Info", "Outgoing 30s", "Timestamp", "2024-01-02 10:00"),
	}

	calls := Calls(rows)
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Info)
	assert.Equal(t, "Outgoing 30s", calls[1].Info)
}

func TestContacts_CaseInsensitiveLabels(t *testing.T) {
	rows := []decode.RawRow{
		row("NAME", "Bob", " phone ", "+15550100"),
		row("name", "Alice", "number", "+15550101", "notes", "Alice B. Smith"),
	}

	contacts := Contacts(rows)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Bob", contacts[0].Name)
	assert.Equal(t, "Alice B. Smith", contacts[1].FullName)
}

func TestBank_Normalization(t *testing.T) {
	rows := []decode.RawRow{
		row("From", "ACME Corp", "Routing", "DE0012", "Reason", "salary",
			"Amount", "2,000.00 $", "Balance", "2,100.00 $", "Date", "2024-01-31"),
		row("From", "", "Amount", "1.00", "Date", "2024-02-01"),
		row("From", "Grocer", "Amount", "-12.50 $", "Date", ""),
	}

	records := Bank(rows)
	require.Len(t, records, 1, "counterparty and date are required")
	assert.Equal(t, "bank-0001", records[0].ID)
	assert.True(t, records[0].Amount.Equal(amount("2000.00")))
	assert.True(t, records[0].Balance.Equal(amount("2100.00")))
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("-1,234.50 $").Equal(amount("-1234.50")))
	assert.True(t, ParseAmount("100").Equal(amount("100")))
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("n/a").IsZero())
}
