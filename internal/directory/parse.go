package directory

import (
	"fmt"

	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

// ParseAccounts converts the Accounts table into typed account records.
// Rows without a membership number are skipped.
func ParseAccounts(t *sheet.Table) ([]Account, error) {
	accounts := make([]Account, 0, t.Len())

	for _, row := range t.Rows {
		id := t.Cell(row, "Membership Number")
		if id == "" {
			continue
		}

		acc := Account{
			MembershipID:     id,
			Associate:        sheet.ParseBool(t.Cell(row, "Associate")),
			PostZone:         t.Cell(row, "Post Zone"),
			PropertyCode:     t.Cell(row, "Property Code"),
			Offsite:          sheet.ParseBool(t.Cell(row, "Offsite")),
			Addressee:        t.Cell(row, "Addressee"),
			InformalGreeting: t.Cell(row, "Informal Greeting"),
			AddressLine1:     t.Cell(row, "Address Line 1"),
			AddressLine2:     t.Cell(row, "Address Line 2"),
			City:             t.Cell(row, "City"),
			County:           t.Cell(row, "County"),
			PostCode:         t.Cell(row, "Post Code"),
			Country:          t.Cell(row, "Country"),
		}

		if cancelled, ok := sheet.ParseDate(t.Cell(row, "Cancelled")); ok {
			acc.Cancelled = &cancelled
		}

		if joined, ok := sheet.ParseDate(t.Cell(row, "Date First Joined")); ok {
			acc.Joined = &joined
		}

		accounts = append(accounts, acc)
	}

	return accounts, nil
}

// ParseOccupants converts the Members table into occupant records.
func ParseOccupants(t *sheet.Table) ([]Occupant, error) {
	occupants := make([]Occupant, 0, t.Len())

	for _, row := range t.Rows {
		id := t.Cell(row, "Membership Number")
		if id == "" {
			continue
		}

		count, err := sheet.ParseInt(t.Cell(row, "Count"))
		if err != nil {
			return nil, fmt.Errorf("membership %s: bad occupant count: %w", id, err)
		}

		if count == 0 {
			count = 1
		}

		occupants = append(occupants, Occupant{
			MembershipID: id,
			Count:        count,
			FullName:     t.Cell(row, "Full Name"),
			InformalName: t.Cell(row, "Informal Name"),
			Email:        t.Cell(row, "Email"),
			Telephone:    t.Cell(row, "Telephone"),
			MailingList:  sheet.ParseBool(t.Cell(row, "Mailing List")),
		})
	}

	return occupants, nil
}

// ParseProperties converts the Properties table into a lookup by
// property code.
func ParseProperties(t *sheet.Table) (map[string]Property, error) {
	properties := make(map[string]Property, t.Len())

	for _, row := range t.Rows {
		code := t.Cell(row, "Property Code")
		if code == "" {
			continue
		}

		properties[code] = Property{
			Code:     code,
			Address1: t.Cell(row, "Address 1"),
			Address2: t.Cell(row, "Address 2"),
			PostCode: t.Cell(row, "Post Code"),
		}
	}

	return properties, nil
}
