package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSX_StandardLayout(t *testing.T) {
	data := workbookBytes(t, [][]any{
		{"Sender", "Receiver", "Message", "Timestamp"},
		{"A", "B", "hi", "2024-01-01 10:00"},
	})

	rows, err := XLSX("messages.xlsx", data, KindMessage)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hi", rows[0].Get("Message"))
}

func TestXLSX_SectionedExport(t *testing.T) {
	data := workbookBytes(t, [][]any{
		{"Phone Number: +15550100"},
		{"MESSAGES"},
		{"Sender", "Receiver", "Message", "Timestamp"},
		{"+15550100", "+15550199", "out", "2024-01-01 09:00"},
		{"CALLS"},
		{"Sender", "Receiver", "Call Info", "Timestamp"},
		{"+15550199", "+15550100", "60s", "2024-01-02 09:00"},
	})

	rows, err := XLSX("export.xlsx", data, KindMessage)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, KindMessage, rows[0].KindHint)
	assert.Equal(t, "Sender", rows[0].DirectionHint)
	assert.Equal(t, KindCall, rows[1].KindHint)
	assert.Equal(t, "Receiver", rows[1].DirectionHint)
}

func TestXLSX_Empty(t *testing.T) {
	rows, err := XLSX("empty.xlsx", nil, KindMessage)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestXLSX_Malformed(t *testing.T) {
	_, err := XLSX("bad.xlsx", []byte("not a workbook"), KindMessage)
	require.Error(t, err)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "bad.xlsx", derr.File)
}
