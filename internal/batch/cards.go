package batch

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
)

// Card is one print-card record: an issuance and one named occupant.
type Card struct {
	Filename     string // sequential Card_NNNN token
	MembershipID string
	Address      string // property address line, printed on the card
	Name         string
	EndDateText  string // long-form card end date, "30th of June 2026"
	DisplayYear  int    // fiscal year shown on the card face
	StartYear    int
	EndMonth     string // three-letter month of the card end
	EndYear      int
	PrizeText    string
	Anticipatory bool
}

// Counter issues the sequential card filename tokens. It is threaded
// through assembly as an explicit value so the sequence stays a single
// run-scoped series: starting at 1, increasing by 1, never reused.
type Counter struct {
	n int
}

// Next returns the next filename token.
func (c *Counter) Next() string {
	c.n++
	return fmt.Sprintf("Card_%04d", c.n)
}

// Cards builds one card per printable issuance and occupant, in
// canonical letter order with the occupant count as final tiebreak.
// The filename tokens are assigned in that fixed order.
func Cards(
	issues []issuance.Issue,
	accounts map[string]directory.Account,
	occupants []directory.Occupant,
	properties map[string]directory.Property,
	competitions Competitions,
	counter *Counter,
) []Card {
	occIdx := indexOccupants(occupants)

	var cards []Card

	for _, issue := range issues {
		if issue.Preprinted {
			continue
		}

		acc := accounts[issue.MembershipID]
		property := properties[acc.PropertyCode]

		for _, occ := range occIdx[issue.MembershipID] {
			year := displayYear(issue.CardEnd)

			cards = append(cards, Card{
				Filename:     counter.Next(),
				MembershipID: issue.MembershipID,
				Address:      property.Address1,
				Name:         occ.FullName,
				EndDateText:  ordinalDate(issue.CardEnd),
				DisplayYear:  year,
				StartYear:    issue.CardIssuance.Year(),
				EndMonth:     issue.CardEnd.Month().String()[:3],
				EndYear:      issue.CardEnd.Year(),
				PrizeText:    competitions.Text(year),
				Anticipatory: issue.Anticipatory,
			})
		}
	}

	return cards
}

// displayYear is the fiscal year printed on the card: the calendar year
// before the card end, or two years before when the card ends before
// April.
func displayYear(cardEnd time.Time) int {
	if cardEnd.Month() < time.April {
		return cardEnd.Year() - 2
	}

	return cardEnd.Year() - 1
}

// ordinalDate renders a date as "2nd of June 2026".
func ordinalDate(t time.Time) string {
	day := t.Day()

	suffix := "th"
	if day/10 != 1 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return fmt.Sprintf("%d%s of %s %d", day, suffix, t.Month(), t.Year())
}
