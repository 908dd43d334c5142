package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRecordID(t *testing.T) {
	tests := []struct {
		kind string
		seq  int
		want string
	}{
		{"bank", 1, "bank-0001"},
		{"bank", 42, "bank-0042"},
		{"msg", 12345, "msg-12345"},
	}
	for _, tt := range tests {
		got := FormatRecordID(tt.kind, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseRecordID(t *testing.T) {
	tests := []struct {
		input    string
		wantKind string
		wantSeq  int
	}{
		{"bank-0001", "bank", 1},
		{"bank-0042", "bank", 42},
		{"msg-12345", "msg", 12345},
	}
	for _, tt := range tests {
		kind, seq, err := ParseRecordID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantKind, kind)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseRecordID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"bank",
		"bank-",
		"-0001",
		"bank-xyz",
	}
	for _, input := range badInputs {
		_, _, err := ParseRecordID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}
