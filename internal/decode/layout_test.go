package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLayout_Standard(t *testing.T) {
	table := [][]string{
		{"junk"},
		{"Sender", "Receiver", "Message", "Timestamp"},
		{"A", "B", "hi", "2024-01-01 10:00"},
	}
	layout := DetectLayout(table, KindMessage)
	assert.Equal(t, LayoutStandard, layout.Kind)
	assert.Equal(t, 1, layout.HeaderIndex)
}

func TestDetectLayout_Sectioned(t *testing.T) {
	table := [][]string{
		{"Phone Number: 123"},
		{"MESSAGES"},
		{"Sender", "Receiver", "Message", "Timestamp"},
	}
	layout := DetectLayout(table, KindMessage)
	assert.Equal(t, LayoutSectioned, layout.Kind)
}

func TestDetectLayout_HeaderlessFallback(t *testing.T) {
	table := [][]string{
		{"x", "y"},
		{"1", "2"},
	}
	layout := DetectLayout(table, KindMessage)
	assert.Equal(t, LayoutHeaderless, layout.Kind)
	assert.Equal(t, 0, layout.HeaderIndex)
}

func TestDetectLayout_BankIsCaseSensitive(t *testing.T) {
	// Lowercase labels do not satisfy the bank header scan.
	table := [][]string{
		{"from", "amount", "date"},
		{"ACME", "10.00", "2024-01-01"},
	}
	layout := DetectLayout(table, KindBank)
	assert.Equal(t, LayoutHeaderless, layout.Kind)
	assert.Equal(t, 0, layout.HeaderIndex)

	table[0] = []string{"From", "Amount", "Date"}
	layout = DetectLayout(table, KindBank)
	assert.Equal(t, LayoutStandard, layout.Kind)
}

func TestDetectLayout_ScanLimit(t *testing.T) {
	var table [][]string
	for i := 0; i < 25; i++ {
		table = append(table, []string{"filler"})
	}
	table = append(table, []string{"Sender", "Receiver", "Message", "Timestamp"})

	layout := DetectLayout(table, KindMessage)
	assert.Equal(t, LayoutHeaderless, layout.Kind, "header past the scan window is not found")
}
