package model

import "github.com/shopspring/decimal"

// Direction classifies who originated a message or call relative to the
// device owner: the owner sent it, or the owner received it.
type Direction string

const (
	DirectionSender   Direction = "Sender"
	DirectionReceiver Direction = "Receiver"
)

// Message is a canonical SMS record. Sender, Receiver, Body and Timestamp
// are non-empty after normalization; ID may be empty or synthetic.
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Body      string    `json:"body"`
	Direction Direction `json:"direction"`
	Timestamp string    `json:"timestamp"`
}

// Call is a canonical call-log record. Info carries free-text duration/type
// detail when the export provides one.
type Call struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Info      string    `json:"info"`
	Direction Direction `json:"direction"`
	Timestamp string    `json:"timestamp"`
}

// Contact is a directory entry keyed by phone number. FullName is an
// optional secondary name used to cross-reference bank counterparties.
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	FullName string `json:"full_name,omitempty"`
}

// BankRecord is a canonical bank statement row. ID is a synthetic sequential
// identifier assigned at normalization time.
type BankRecord struct {
	ID           string          `json:"id"`
	Counterparty string          `json:"counterparty"`
	RoutingCode  string          `json:"routing_code"`
	Reason       string          `json:"reason"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
	Date         string          `json:"date"`
}

// ParsedData is the full record set of one session: everything the user has
// uploaded, normalized and deduplicated.
type ParsedData struct {
	Messages []Message    `json:"messages"`
	Calls    []Call       `json:"calls"`
	Contacts []Contact    `json:"contacts"`
	Bank     []BankRecord `json:"bank_records"`
}

// Empty reports whether the session holds no records of any kind.
func (d ParsedData) Empty() bool {
	return len(d.Messages) == 0 && len(d.Calls) == 0 && len(d.Contacts) == 0 && len(d.Bank) == 0
}
