package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/membercards/internal/batch"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
	"github.com/MrJamesThe3rd/membercards/internal/logger"
	"github.com/MrJamesThe3rd/membercards/internal/pipeline"
	"github.com/MrJamesThe3rd/membercards/internal/postal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleCard() batch.Card {
	return batch.Card{
		Filename:     "Card_0001",
		MembershipID: "42",
		Address:      "1 Defoe House",
		Name:         "Jane Doe",
		EndDateText:  "30th of June 2026",
		DisplayYear:  2025,
		StartYear:    2025,
		EndMonth:     "Jun",
		EndYear:      2026,
		PrizeText:    "This year's picture is by Jo Bloggs, winner of the 2025 Barbican Photo Competition.",
		Anticipatory: false,
	}
}

func TestCardsTable(t *testing.T) {
	table := cardsTable([]batch.Card{sampleCard()})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"p", "n", "mn", "ad", "nm", "d", "year", "sy", "em", "ey", "pw", "an"}, table.Columns)
	assert.Equal(t, "p", table.Rows[0][0])
	assert.Equal(t, "Card_0001", table.Rows[0][1])
	assert.Equal(t, "42", table.Rows[0][2])
	assert.Equal(t, "2025", table.Rows[0][6])
	assert.Equal(t, "Jun", table.Rows[0][8])
	assert.Equal(t, "False", table.Rows[0][11])
}

func TestTenUpTable_PadsShortBlocks(t *testing.T) {
	blocks := batch.TenUp([]batch.Card{sampleCard(), sampleCard()})
	table := tenUpTable(blocks)

	// n, p then nine fields per card position.
	require.Len(t, table.Columns, 2+9*batch.BlockSize)
	assert.Equal(t, "n", table.Columns[0])
	assert.Equal(t, "mn1", table.Columns[2])
	assert.Equal(t, "pw10", table.Columns[len(table.Columns)-1])

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "0000", row[0])
	assert.Equal(t, "p", row[1])
	assert.Equal(t, "42", row[2])
	assert.Equal(t, "42", row[11])

	// Positions three through ten stay blank.
	for _, cell := range row[20:] {
		assert.Empty(t, cell)
	}
}

func TestRenewalLetterTable(t *testing.T) {
	table := renewalLetterTable([]batch.LetterEntry{{
		Addressee:    "Ms J Doe",
		MembershipID: "42",
		LetterDate:   date(2025, time.June, 1),
		Anticipatory: true,
	}})

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "Ms J Doe", row[0])
	assert.Equal(t, "2025-06-01", table.Cell(row, "Letter Date"))
	assert.Equal(t, "True", table.Cell(row, "Anticipatory"))
}

func TestNewIssuancesTable_FormatsFeeAndDates(t *testing.T) {
	result := &pipeline.Result{
		Issues: []issuance.Issue{{
			Record: issuance.Record{
				MembershipID: "42",
				Processing:   date(2025, time.June, 2),
				CardIssuance: date(2025, time.June, 2),
				Renewal:      date(2026, time.June, 1),
				CardEnd:      date(2026, time.June, 30),
				Fee:          800,
			},
		}},
	}

	table := newIssuancesTable(result)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "8", table.Cell(row, "Membership Fee"))
	assert.Equal(t, "2026-06-30", table.Cell(row, "Card End Date"))
	assert.Equal(t, "False", table.Cell(row, "Anticipatory"))
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	log := logger.New("error")

	result := &pipeline.Result{
		Started: time.Date(2025, time.June, 2, 9, 30, 15, 0, time.UTC),
		Cards:   []batch.Card{sampleCard()},
		Blocks:  batch.TenUp([]batch.Card{sampleCard()}),
		Postal: &postal.Result{
			Totals: []postal.Total{{Batch: "202506", Zone: "UK", Letters: 1, Cards: 1}},
		},
	}

	w := NewWriter(dir, log)
	require.NoError(t, w.WriteAll(result))

	for _, name := range []string{
		"Cards to Print 2025-06-02T09-30-15.xlsx",
		"postal batches 2025-06-02T09-30-15.xlsx",
		"Addresses 2025-06-02T09-30-15.xlsx",
		"Cards 2025-06-02T09-30-15.csv",
		"Cards_10up 2025-06-02T09-30-15.csv",
		"current_members-2025-06-02T09-30-15.csv",
		"associate_members2025-06-02T09-30-15.csv",
		"normal_members2025-06-02T09-30-15.csv",
		"mailing_list_members2025-06-02T09-30-15.csv",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	f, err := os.Open(filepath.Join(dir, "Cards 2025-06-02T09-30-15.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Card_0001", rows[1][1])
}

func TestWriteAll_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	log := logger.New("error")

	result := &pipeline.Result{
		Started: time.Date(2025, time.June, 2, 9, 30, 15, 0, time.UTC),
		Postal:  &postal.Result{},
	}

	require.NoError(t, NewWriter(dir, log).WriteAll(result))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
