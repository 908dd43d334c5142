package normalize

import (
	"strings"

	"github.com/commtrace-dev/commtrace/internal/decode"
)

// Field aliases: each canonical field is pulled from an ordered list of
// acceptable source column labels, first non-empty value wins. Labels match
// case-insensitively after whitespace trimming, so the lists only spell the
// most common casing. Synthetic column_N labels cover headerless exports.
var (
	messageIDAliases       = []string{"ID", "id", "Index"}
	messageSenderAliases   = []string{"Sender Number", "Sender", "From", "column_1"}
	messageReceiverAliases = []string{"Receiver Number", "Receiver", "To", "Target", "column_2"}
	messageBodyAliases     = []string{"Message Body", "Message", "Body", "Content", "Text", "column_3"}
	timestampAliases       = []string{"Timestamp", "Time", "Date/Time", "Date", "Sent", "column_4"}
	directionAliases       = []string{"Type", "Direction"}

	callInfoAliases = []string{"Call Info", "Duration", "Call Type", "Info", "column_3"}

	contactNameAliases  = []string{"Name", "Contact Name", "Contact", "Display Name", "column_1"}
	contactPhoneAliases = []string{"Phone Number", "Phone", "Number", "Mobile", "column_2"}
	contactFullAliases  = []string{"Full Name", "Notes", "Info", "column_3"}

	bankCounterpartyAliases = []string{"From", "Counterparty", "Name", "column_1"}
	bankRoutingAliases      = []string{"Routing", "Routing Code", "Code", "column_2"}
	bankReasonAliases       = []string{"Reason", "Description", "Memo", "column_3"}
	bankAmountAliases       = []string{"Amount", "Value", "column_4"}
	bankBalanceAliases      = []string{"Balance", "column_5"}
	bankDateAliases         = []string{"Date", "Booking Date", "column_6"}
)

// pick walks the alias list in order and returns the first non-empty cell,
// along with the row label it was found under.
func pick(row decode.RawRow, aliases []string) (value, label string) {
	for _, alias := range aliases {
		for _, l := range row.Labels {
			if !strings.EqualFold(strings.TrimSpace(l), alias) {
				continue
			}
			if v := strings.TrimSpace(row.Values[l]); v != "" {
				return v, l
			}
		}
	}
	return "", ""
}

// isHeaderEcho reports whether an extracted value is really a column label:
// either the label it was found under, or any alias for its field. Such rows
// are mis-parsed or repeated header lines.
func isHeaderEcho(value, label string, aliases []string) bool {
	if value == "" {
		return false
	}
	if value == label {
		return true
	}
	for _, alias := range aliases {
		if strings.EqualFold(value, alias) {
			return true
		}
	}
	return false
}

// hasMetadataMarker reports whether a value carries an export-metadata
// marker, such as the owner preamble or a section delimiter.
func hasMetadataMarker(value string) bool {
	for _, m := range decode.MetadataMarkers {
		if strings.Contains(value, m) {
			return true
		}
	}
	return false
}
