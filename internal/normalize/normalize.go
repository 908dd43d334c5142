// Package normalize maps decoded rows onto the canonical record schemas,
// dropping rows that fail validation. Drops are routine, not errors: export
// files repeat headers, interleave metadata, and pad with blank rows.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/commtrace-dev/commtrace/internal/decode"
	"github.com/commtrace-dev/commtrace/internal/id"
	"github.com/commtrace-dev/commtrace/internal/model"
)

// field is one extracted cell plus everything needed for the rejection
// rules: the label it came from, its alias list, and whether the canonical
// record requires it.
type field struct {
	value    string
	label    string
	aliases  []string
	required bool
}

// reject applies the shared rejection rules to a row's extracted fields, in
// order: header echo, metadata marker, then missing required values.
func reject(fields []field) bool {
	for _, f := range fields {
		if isHeaderEcho(f.value, f.label, f.aliases) {
			return true
		}
	}
	for _, f := range fields {
		if hasMetadataMarker(f.value) {
			return true
		}
	}
	for _, f := range fields {
		if f.required && f.value == "" {
			return true
		}
	}
	return false
}

// Messages converts rows into validated Message records.
func Messages(rows []decode.RawRow) []model.Message {
	var out []model.Message
	for _, row := range rows {
		if row.KindHint != "" && row.KindHint != decode.KindMessage {
			continue
		}

		msgID, _ := pick(row, messageIDAliases)
		sender, senderLabel := pick(row, messageSenderAliases)
		receiver, receiverLabel := pick(row, messageReceiverAliases)
		body, bodyLabel := pick(row, messageBodyAliases)
		ts, tsLabel := pick(row, timestampAliases)

		if reject([]field{
			{sender, senderLabel, messageSenderAliases, true},
			{receiver, receiverLabel, messageReceiverAliases, true},
			{body, bodyLabel, messageBodyAliases, true},
			{ts, tsLabel, timestampAliases, true},
		}) {
			continue
		}

		out = append(out, model.Message{
			ID:        Sanitize(msgID),
			Sender:    Sanitize(sender),
			Receiver:  Sanitize(receiver),
			Body:      Sanitize(body),
			Direction: direction(row),
			Timestamp: Sanitize(ts),
		})
	}
	return out
}

// Calls converts rows into validated Call records.
func Calls(rows []decode.RawRow) []model.Call {
	var out []model.Call
	for _, row := range rows {
		if row.KindHint != "" && row.KindHint != decode.KindCall {
			continue
		}

		callID, _ := pick(row, messageIDAliases)
		sender, senderLabel := pick(row, messageSenderAliases)
		receiver, receiverLabel := pick(row, messageReceiverAliases)
		info, infoLabel := pick(row, callInfoAliases)
		ts, tsLabel := pick(row, timestampAliases)

		if reject([]field{
			{sender, senderLabel, messageSenderAliases, true},
			{receiver, receiverLabel, messageReceiverAliases, true},
			{info, infoLabel, callInfoAliases, false},
			{ts, tsLabel, timestampAliases, true},
		}) {
			continue
		}

		out = append(out, model.Call{
			ID:        Sanitize(callID),
			Sender:    Sanitize(sender),
			Receiver:  Sanitize(receiver),
			Info:      Sanitize(info),
			Direction: direction(row),
			Timestamp: Sanitize(ts),
		})
	}
	return out
}

// Contacts converts rows into validated Contact records.
func Contacts(rows []decode.RawRow) []model.Contact {
	var out []model.Contact
	for _, row := range rows {
		if row.KindHint != "" && row.KindHint != decode.KindContact {
			continue
		}

		name, nameLabel := pick(row, contactNameAliases)
		phone, phoneLabel := pick(row, contactPhoneAliases)
		full, fullLabel := pick(row, contactFullAliases)

		if reject([]field{
			{name, nameLabel, contactNameAliases, true},
			{phone, phoneLabel, contactPhoneAliases, true},
			{full, fullLabel, contactFullAliases, false},
		}) {
			continue
		}

		out = append(out, model.Contact{
			Name:     Sanitize(name),
			Phone:    Sanitize(phone),
			FullName: Sanitize(full),
		})
	}
	return out
}

// Bank converts rows into validated BankRecords, assigning synthetic
// sequential IDs in input order.
func Bank(rows []decode.RawRow) []model.BankRecord {
	var out []model.BankRecord
	for _, row := range rows {
		if row.KindHint != "" && row.KindHint != decode.KindBank {
			continue
		}

		cparty, cpartyLabel := pick(row, bankCounterpartyAliases)
		routing, routingLabel := pick(row, bankRoutingAliases)
		reason, reasonLabel := pick(row, bankReasonAliases)
		amount, amountLabel := pick(row, bankAmountAliases)
		balance, balanceLabel := pick(row, bankBalanceAliases)
		date, dateLabel := pick(row, bankDateAliases)

		if reject([]field{
			{cparty, cpartyLabel, bankCounterpartyAliases, true},
			{routing, routingLabel, bankRoutingAliases, false},
			{reason, reasonLabel, bankReasonAliases, false},
			{amount, amountLabel, bankAmountAliases, false},
			{balance, balanceLabel, bankBalanceAliases, false},
			{date, dateLabel, bankDateAliases, true},
		}) {
			continue
		}

		out = append(out, model.BankRecord{
			ID:           id.FormatRecordID("bank", len(out)+1),
			Counterparty: Sanitize(cparty),
			RoutingCode:  Sanitize(routing),
			Reason:       Sanitize(reason),
			Amount:       ParseAmount(amount),
			Balance:      ParseAmount(balance),
			Date:         Sanitize(date),
		})
	}
	return out
}

// direction resolves a row's direction tag: an explicit type column wins,
// then the decoder's owner-metadata hint, then the Sender default.
func direction(row decode.RawRow) model.Direction {
	if v, _ := pick(row, directionAliases); v != "" {
		if strings.EqualFold(v, string(model.DirectionReceiver)) {
			return model.DirectionReceiver
		}
		if strings.EqualFold(v, string(model.DirectionSender)) {
			return model.DirectionSender
		}
	}
	switch row.DirectionHint {
	case string(model.DirectionReceiver):
		return model.DirectionReceiver
	case string(model.DirectionSender):
		return model.DirectionSender
	}
	return model.DirectionSender
}

// ParseAmount parses a loosely-formatted currency string like "-1,234.50 $"
// into a decimal. Currency symbols and thousands separators are stripped;
// anything unparsable yields zero.
func ParseAmount(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
