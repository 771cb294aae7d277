// Package report renders a run's results to the spreadsheet and CSV
// files the membership team works from.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/batch"
	"github.com/MrJamesThe3rd/membercards/internal/mailing"
	"github.com/MrJamesThe3rd/membercards/internal/pipeline"
	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}

func fmtBool(b bool) string {
	if b {
		return "True"
	}

	return "False"
}

var letterColumns = []string{
	"Addressee", "Informal Greeting", "Address Line 1", "Address Line 2",
	"City", "County", "Post Code", "Country", "Membership Number",
	"Telephone", "Email",
}

func letterCells(entry batch.LetterEntry) []string {
	return []string{
		entry.Addressee, entry.InformalGreeting, entry.AddressLine1,
		entry.AddressLine2, entry.City, entry.County, entry.PostCode,
		entry.Country, entry.MembershipID, entry.Telephone, entry.Email,
	}
}

// newLetterTable drops the batch columns: welcome letters are not dated
// against a previous cycle.
func newLetterTable(entries []batch.LetterEntry) *sheet.Table {
	t := sheet.NewTable(letterColumns)
	for _, entry := range entries {
		t.Append(letterCells(entry)...)
	}

	return t
}

func renewalLetterTable(entries []batch.LetterEntry) *sheet.Table {
	t := sheet.NewTable(append(append([]string{}, letterColumns...), "Letter Date", "Anticipatory"))
	for _, entry := range entries {
		t.Append(append(letterCells(entry), fmtDate(entry.LetterDate), fmtBool(entry.Anticipatory))...)
	}

	return t
}

func newIssuancesTable(result *pipeline.Result) *sheet.Table {
	t := sheet.NewTable([]string{
		"Membership Number", "Processing Date", "Card Issuance",
		"Renewal Date", "Card End Date", "Membership Fee", "Anticipatory",
	})

	for _, issue := range result.Issues {
		t.Append(
			issue.MembershipID,
			fmtDate(issue.Processing),
			fmtDate(issue.CardIssuance),
			fmtDate(issue.Renewal),
			fmtDate(issue.CardEnd),
			sheet.FormatPence(issue.Fee),
			fmtBool(issue.Anticipatory),
		)
	}

	return t
}

func usedPreprintsTable(result *pipeline.Result) *sheet.Table {
	t := sheet.NewTable([]string{"Membership Number", "Letter Date", "Addressee", "Address Line 1"})
	for _, used := range result.UsedPreprints {
		t.Append(used.MembershipID, fmtDate(used.LetterDate), used.Addressee, used.AddressLine1)
	}

	return t
}

func zoneTable(zones []batch.ZoneCount) *sheet.Table {
	t := sheet.NewTable([]string{"Post Zone", "Count"})
	for _, zone := range zones {
		t.Append(zone.Zone, strconv.Itoa(zone.Count))
	}

	return t
}

var cardColumns = []string{"p", "n", "mn", "ad", "nm", "d", "year", "sy", "em", "ey", "pw", "an"}

func cardsTable(cards []batch.Card) *sheet.Table {
	t := sheet.NewTable(cardColumns)
	for _, card := range cards {
		t.Append(
			"p",
			card.Filename,
			card.MembershipID,
			card.Address,
			card.Name,
			card.EndDateText,
			strconv.Itoa(card.DisplayYear),
			strconv.Itoa(card.StartYear),
			card.EndMonth,
			strconv.Itoa(card.EndYear),
			card.PrizeText,
			fmtBool(card.Anticipatory),
		)
	}

	return t
}

// tenUpColumns are the per-position card fields of the 10-up sheet; the
// p, n, c and anticipatory columns are not suffixed.
var tenUpColumns = []string{"mn", "ad", "nm", "d", "year", "sy", "em", "ey", "pw"}

func tenUpTable(blocks []batch.Block) *sheet.Table {
	columns := []string{"n", "p"}

	for pos := 1; pos <= batch.BlockSize; pos++ {
		for _, col := range tenUpColumns {
			columns = append(columns, fmt.Sprintf("%s%d", col, pos))
		}
	}

	t := sheet.NewTable(columns)

	for _, block := range blocks {
		row := make([]string, len(columns))
		row[0] = block.Number
		row[1] = "p"

		for i, card := range block.Cards {
			cells := []string{
				card.MembershipID, card.Address, card.Name, card.EndDateText,
				strconv.Itoa(card.DisplayYear), strconv.Itoa(card.StartYear),
				card.EndMonth, strconv.Itoa(card.EndYear), card.PrizeText,
			}
			copy(row[2+i*len(tenUpColumns):], cells)
		}

		t.Append(row...)
	}

	return t
}

func postalBatchesTable(result *pipeline.Result) *sheet.Table {
	t := sheet.NewTable([]string{"Batch", "Zone", "Letters", "Cards", "Preprinted Letters", "Preprinted Cards"})
	for _, total := range result.Postal.Totals {
		t.Append(
			total.Batch, total.Zone,
			strconv.Itoa(total.Letters), strconv.Itoa(total.Cards),
			strconv.Itoa(total.PreprintedLetters), strconv.Itoa(total.PreprintedCards),
		)
	}

	return t
}

func zoneResolvedTable(result *pipeline.Result) *sheet.Table {
	t := sheet.NewTable([]string{"Batch", "Zone", "Fee", "Letters", "Cards", "Preprinted Letters", "Preprinted Cards"})
	for _, row := range result.Postal.Resolved {
		t.Append(
			row.Batch, row.Zone, sheet.FormatPence(row.Fee),
			strconv.Itoa(row.Letters), strconv.Itoa(row.Cards),
			strconv.Itoa(row.PreprintedLetters), strconv.Itoa(row.PreprintedCards),
		)
	}

	return t
}

func workingTable(result *pipeline.Result) *sheet.Table {
	t := sheet.NewTable([]string{
		"Membership ID",
		"Processing Date Original", "Card Issuance Original", "Membership Fee Original",
		"Processing Date Joined", "Card Issuance Joined", "Membership Fee Joined",
		"Members", "Preprinted",
		"Has Fee", "Previous Prospectives", "Closest Prospective", "Replace Fee",
		"Batch", "Fee", "Zone", "Valid",
	})

	for _, pair := range result.Postal.Pairs {
		t.Append(
			pair.MembershipID,
			fmtDate(pair.Original.Processing), fmtDate(pair.Original.CardIssuance), sheet.FormatPence(pair.Original.Fee),
			fmtDate(pair.Joined.Processing), fmtDate(pair.Joined.CardIssuance), sheet.FormatPence(pair.Joined.Fee),
			strconv.Itoa(pair.Members), fmtBool(pair.Preprinted),
			fmtBool(pair.HasFee), fmtBool(pair.PreviousProspective),
			fmtBool(pair.ClosestProspective), fmtBool(pair.ReplaceFee),
			pair.Resolved.Batch, sheet.FormatPence(pair.Resolved.Fee),
			pair.Resolved.Zone, fmtBool(pair.Resolved.Valid),
		)
	}

	return t
}

func offsiteTable(result *pipeline.Result) *sheet.Table {
	t := sheet.NewTable([]string{
		"Addressee", "Informal Greeting", "Address Line 1", "Address Line 2",
		"City", "County", "Post Code", "Country", "Post Zone", "Membership Number",
	})

	for _, acc := range result.Offsite {
		t.Append(
			acc.Addressee, acc.InformalGreeting, acc.AddressLine1, acc.AddressLine2,
			acc.City, acc.County, acc.PostCode, acc.Country, acc.PostZone, acc.MembershipID,
		)
	}

	return t
}

func detailsTable(result *pipeline.Result) *sheet.Table {
	t := sheet.NewTable([]string{
		"Membership Number", "Full Name", "Email", "Telephone",
		"Flat Address Line 1", "Flat Address Line 2", "Flat City", "Flat Post Code",
		"Correspondence Address Line 1", "Correspondence Address Line 2",
		"Correspondence City", "Correspondence County",
		"Correspondence Post Code", "Correspondence Country",
	})

	for _, row := range result.Details {
		t.Append(
			row.MembershipID, row.FullName, row.Email, row.Telephone,
			row.FlatAddressLine1, row.FlatAddressLine2, row.FlatCity, row.FlatPostCode,
			row.CorrAddressLine1, row.CorrAddressLine2,
			row.CorrCity, row.CorrCounty, row.CorrPostCode, row.CorrCountry,
		)
	}

	return t
}

func emailTable(rows []mailing.EmailRow) *sheet.Table {
	t := sheet.NewTable([]string{"Membership Number", "Email", "Informal Name", "Full Name"})
	for _, row := range rows {
		t.Append(row.MembershipID, row.Email, row.InformalName, row.FullName)
	}

	return t
}
