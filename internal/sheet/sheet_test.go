package sheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-06-02", time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), true},
		{"2025-06-02 14:30:00", time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), true},
		{"02/06/2025", time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), true},
		{"  2025-06-02  ", time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParsePence(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10", 1000},
		{"8.00", 800},
		{"11.5", 1150},
		{"1,234.56", 123456},
		{"-9", -900},
	}

	for _, tt := range tests {
		got, err := ParsePence(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParsePence("ten pounds")
	assert.Error(t, err)
}

func TestFormatPence(t *testing.T) {
	assert.Equal(t, "10", FormatPence(1000))
	assert.Equal(t, "11.50", FormatPence(1150))
	assert.Equal(t, "0", FormatPence(0))
	assert.Equal(t, "0.05", FormatPence(5))
}

func TestParseInt_ToleratesFloatCells(t *testing.T) {
	got, err := ParseInt("3.0")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = ParseInt("")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = ParseInt("three")
	assert.Error(t, err)
}

func TestTableCell(t *testing.T) {
	tbl := NewTable([]string{"Membership Number", " Post Zone "}, []string{" 42 ", "UK"})

	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "42", tbl.Cell(tbl.Rows[0], "Membership Number"))
	assert.Equal(t, "UK", tbl.Cell(tbl.Rows[0], "Post Zone"))
	assert.Equal(t, "", tbl.Cell(tbl.Rows[0], "Missing"))
	assert.True(t, tbl.Has("Post Zone"))
	assert.False(t, tbl.Has("Missing"))
}

func TestDirLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	csvBody := "\n\nMembership Number,Post Zone\n42,UK\n9,Europe\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Accounts.csv"), []byte(csvBody), 0o644))

	tbl, err := NewDir(dir).Load("Accounts", "Accounts")
	require.NoError(t, err)

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "42", tbl.Cell(tbl.Rows[0], "Membership Number"))
	assert.Equal(t, "Europe", tbl.Cell(tbl.Rows[1], "Post Zone"))
}

func TestDirLoad_Missing(t *testing.T) {
	_, err := NewDir(t.TempDir()).Load("Accounts", "Accounts")

	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Accounts", missing.Table)
	assert.Len(t, missing.Paths, 3)
}

func TestWorkbookRoundTrip(t *testing.T) {
	dir := t.TempDir()

	out := NewTable([]string{"Membership Number", "Post Zone"})
	out.Append("42", "UK")
	out.Append("9", "Europe")

	path := filepath.Join(dir, "Accounts.xlsx")
	err := WriteWorkbook(path, []NamedTable{{Name: "Accounts", Table: out}})
	require.NoError(t, err)

	tbl, err := NewDir(dir).Load("Accounts", "Accounts")
	require.NoError(t, err)

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "UK", tbl.Cell(tbl.Rows[0], "Post Zone"))
	assert.Equal(t, "9", tbl.Cell(tbl.Rows[1], "Membership Number"))
}

func TestWorkbookMissingSheet(t *testing.T) {
	dir := t.TempDir()

	out := NewTable([]string{"A"})
	path := filepath.Join(dir, "Accounts.xlsx")
	require.NoError(t, WriteWorkbook(path, []NamedTable{{Name: "Accounts", Table: out}}))

	_, err := NewDir(dir).Load("Accounts", "No Such Sheet")
	assert.Error(t, err)
}
