// Package mailing builds the member contact exports: email segments for
// the newsletter platform and the all-members address list. Membership
// here is looser than the card run: anyone who held a card in the last
// thirteen months, or joined within them, stays on the lists.
package mailing

import (
	"sort"
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/dates"
	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
)

// RecentMemberships reports memberships with a card ending after the
// thirteen-month lookback, or an account that joined inside it.
func RecentMemberships(now time.Time, history []issuance.Record, accounts []directory.Account) map[string]bool {
	from := dates.MonthStart(now).AddDate(0, -12, 0)
	recent := make(map[string]bool)

	for _, rec := range history {
		if rec.CardEnd.After(from) {
			recent[rec.MembershipID] = true
		}
	}

	for _, acc := range accounts {
		if acc.Joined != nil && acc.Joined.After(from) {
			recent[acc.MembershipID] = true
		}
	}

	return recent
}

// EmailRow is one exportable contact.
type EmailRow struct {
	MembershipID string
	Email        string
	InformalName string
	FullName     string
	MailingList  bool
	Associate    bool
}

// Segments are the three newsletter exports.
type Segments struct {
	Associates  []EmailRow
	Normals     []EmailRow
	MailingList []EmailRow
}

// EmailSegments collects every recent occupant with an email address,
// split by account type and mailing-list opt-in. Rows are ordered by
// membership then occupant position.
func EmailSegments(occupants []directory.Occupant, accounts map[string]directory.Account, recent map[string]bool) Segments {
	sorted := make([]directory.Occupant, len(occupants))
	copy(sorted, occupants)
	sort.Slice(sorted, func(i, j int) bool {
		if cmp := directory.CompareID(sorted[i].MembershipID, sorted[j].MembershipID); cmp != 0 {
			return cmp < 0
		}

		return sorted[i].Count < sorted[j].Count
	})

	var segments Segments

	for _, occ := range sorted {
		if occ.Email == "" || !recent[occ.MembershipID] {
			continue
		}

		acc := accounts[occ.MembershipID]
		row := EmailRow{
			MembershipID: occ.MembershipID,
			Email:        occ.Email,
			InformalName: occ.InformalName,
			FullName:     occ.FullName,
			MailingList:  occ.MailingList,
			Associate:    acc.Associate,
		}

		if row.InformalName == "" {
			row.InformalName = row.FullName
		}

		if row.Associate {
			segments.Associates = append(segments.Associates, row)
		} else {
			segments.Normals = append(segments.Normals, row)
		}

		if row.MailingList {
			segments.MailingList = append(segments.MailingList, row)
		}
	}

	return segments
}

// DetailRow is one line of the all-members address list: the occupant
// with their flat address and, for offsite members, the correspondence
// address post goes to.
type DetailRow struct {
	MembershipID string
	FullName     string
	Email        string
	Telephone    string

	FlatAddressLine1 string
	FlatAddressLine2 string
	FlatCity         string
	FlatPostCode     string

	CorrAddressLine1 string
	CorrAddressLine2 string
	CorrCity         string
	CorrCounty       string
	CorrPostCode     string
	CorrCountry      string
}

// Details builds the all-members list over active current members whose
// account maps to a known property.
func Details(
	accounts []directory.Account,
	occupants []directory.Occupant,
	properties map[string]directory.Property,
	current map[string]bool,
) []DetailRow {
	byMembership := make(map[string]directory.Account, len(accounts))
	for _, acc := range accounts {
		if acc.Active() && current[acc.MembershipID] {
			byMembership[acc.MembershipID] = acc
		}
	}

	sorted := make([]directory.Occupant, len(occupants))
	copy(sorted, occupants)
	sort.Slice(sorted, func(i, j int) bool {
		if cmp := directory.CompareID(sorted[i].MembershipID, sorted[j].MembershipID); cmp != 0 {
			return cmp < 0
		}

		return sorted[i].Count < sorted[j].Count
	})

	var rows []DetailRow

	for _, occ := range sorted {
		acc, ok := byMembership[occ.MembershipID]
		if !ok {
			continue
		}

		property, ok := properties[acc.PropertyCode]
		if !ok {
			continue
		}

		row := DetailRow{
			MembershipID:     occ.MembershipID,
			FullName:         occ.FullName,
			Email:            occ.Email,
			Telephone:        occ.Telephone,
			FlatAddressLine1: property.Address1,
			FlatAddressLine2: property.Address2,
			FlatCity:         "London",
			FlatPostCode:     property.PostCode,
		}

		if acc.Offsite {
			row.CorrAddressLine1 = acc.AddressLine1
			row.CorrAddressLine2 = acc.AddressLine2
			row.CorrCity = acc.City
			row.CorrCounty = acc.County
			row.CorrPostCode = acc.PostCode
			row.CorrCountry = acc.Country
		}

		rows = append(rows, row)
	}

	return rows
}
