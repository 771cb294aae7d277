// Package batch assembles the run's issuances into the printable
// outputs: letter batches, card sheets (single and 10-up), and the
// postal-zone groupings used to bag the mail.
package batch

import (
	"sort"

	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
)

// SortIssues applies the canonical batch order: letter date, previous
// issuance, anticipatory, then membership ID. The membership tiebreak
// keeps output byte-identical across runs regardless of input row order.
func SortIssues(issues []issuance.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]

		if !a.LetterDate.Equal(b.LetterDate) {
			return a.LetterDate.Before(b.LetterDate)
		}

		if a.PreviousIssuance != b.PreviousIssuance {
			return !a.PreviousIssuance
		}

		if a.Anticipatory != b.Anticipatory {
			return !a.Anticipatory
		}

		return directory.CompareID(a.MembershipID, b.MembershipID) < 0
	})
}
