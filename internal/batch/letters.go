package batch

import (
	"sort"
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
)

// LetterEntry is one mail-merge row for a renewal or welcome letter.
type LetterEntry struct {
	Addressee        string
	InformalGreeting string
	AddressLine1     string
	AddressLine2     string
	City             string
	County           string
	PostCode         string
	Country          string
	MembershipID     string
	Telephone        string
	Email            string
	LetterDate       time.Time
	PreviousIssuance bool
	Anticipatory     bool
}

// occupantIndex groups occupants by membership, ordered by their count
// within the membership.
type occupantIndex map[string][]directory.Occupant

func indexOccupants(occupants []directory.Occupant) occupantIndex {
	idx := make(occupantIndex)
	for _, occ := range occupants {
		idx[occ.MembershipID] = append(idx[occ.MembershipID], occ)
	}

	for id := range idx {
		occ := idx[id]
		sort.Slice(occ, func(i, j int) bool { return occ[i].Count < occ[j].Count })
	}

	return idx
}

// Letters splits the printable (non-preprinted) issues into the new and
// renewal letter batches. One letter per membership: contact details
// come from the first occupant. Issues must already be in canonical
// order; the split preserves it.
func Letters(issues []issuance.Issue, accounts map[string]directory.Account, occupants []directory.Occupant) (newLetters, renewalLetters []LetterEntry) {
	occIdx := indexOccupants(occupants)

	for _, issue := range issues {
		if issue.Preprinted {
			continue
		}

		acc := accounts[issue.MembershipID]

		entry := LetterEntry{
			Addressee:        acc.Addressee,
			InformalGreeting: acc.InformalGreeting,
			AddressLine1:     acc.AddressLine1,
			AddressLine2:     acc.AddressLine2,
			City:             acc.City,
			County:           acc.County,
			PostCode:         acc.PostCode,
			Country:          acc.Country,
			MembershipID:     issue.MembershipID,
			LetterDate:       issue.LetterDate,
			PreviousIssuance: issue.PreviousIssuance,
			Anticipatory:     issue.Anticipatory,
		}

		if occ := occIdx[issue.MembershipID]; len(occ) > 0 && occ[0].Count == 1 {
			entry.Telephone = occ[0].Telephone
			entry.Email = occ[0].Email
		}

		if issue.PreviousIssuance {
			renewalLetters = append(renewalLetters, entry)
		} else {
			newLetters = append(newLetters, entry)
		}
	}

	return newLetters, renewalLetters
}
