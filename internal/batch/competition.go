package batch

import (
	"fmt"

	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

// Competitions maps a card display year to the photo-competition text
// printed on that year's cards.
type Competitions map[int]string

// ParseCompetitions builds the lookup from the competition-winner table.
// A competition held in year Y decorates the cards displayed for Y+1.
func ParseCompetitions(t *sheet.Table) (Competitions, error) {
	competitions := make(Competitions, t.Len())

	for _, row := range t.Rows {
		winner := t.Cell(row, "Winner")
		if winner == "" {
			continue
		}

		year, err := sheet.ParseInt(t.Cell(row, "Year"))
		if err != nil {
			return nil, fmt.Errorf("competition winner %s: bad year: %w", winner, err)
		}

		display := year + 1
		competitions[display] = fmt.Sprintf(
			"This year's picture is by %s, winner of the %d Barbican Photo Competition.",
			winner, display)
	}

	return competitions, nil
}

// Text returns the competition text for a display year, or "" when the
// year has no entry. Missing years are normal, never an error.
func (c Competitions) Text(year int) string {
	return c[year]
}
