package batch

import (
	"fmt"
	"sort"
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/fee"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
)

// ZoneCount is the number of items mailed to one post zone.
type ZoneCount struct {
	Zone  string
	Count int
}

// countByZone groups zones and orders them by mailing rank. An unknown
// zone is fatal: it would otherwise land in the wrong postage bag.
func countByZone(zones []string) ([]ZoneCount, error) {
	counts := make(map[string]int)
	for _, zone := range zones {
		counts[zone]++
	}

	result := make([]ZoneCount, 0, len(counts))

	for zone, count := range counts {
		if _, err := fee.ZoneOrder(zone); err != nil {
			return nil, fmt.Errorf("counting post zones: %w", err)
		}

		result = append(result, ZoneCount{Zone: zone, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		oi, _ := fee.ZoneOrder(result[i].Zone)
		oj, _ := fee.ZoneOrder(result[j].Zone)

		return oi < oj
	})

	return result, nil
}

// LetterPostZones counts this run's issuances per post zone, in mailing
// order, so the letter batch can be bagged by zone.
func LetterPostZones(issues []issuance.Issue, accounts map[string]directory.Account) ([]ZoneCount, error) {
	zones := make([]string, 0, len(issues))
	for _, issue := range issues {
		zones = append(zones, accounts[issue.MembershipID].PostZone)
	}

	return countByZone(zones)
}

// CurrentMemberships reports which memberships hold an unexpired card.
func CurrentMemberships(history []issuance.Record, now time.Time) map[string]bool {
	current := make(map[string]bool)

	for _, rec := range history {
		if !rec.CardEnd.Before(now) {
			current[rec.MembershipID] = true
		}
	}

	return current
}

// OffsiteMembers lists active current members who receive post away from
// the estate, ordered by zone rank then membership ID.
func OffsiteMembers(accounts []directory.Account, current map[string]bool) ([]directory.Account, error) {
	var offsite []directory.Account

	for _, acc := range accounts {
		if !acc.Active() || !current[acc.MembershipID] || acc.PostZone == "Barbican" {
			continue
		}

		if _, err := fee.ZoneOrder(acc.PostZone); err != nil {
			return nil, fmt.Errorf("membership %s: %w", acc.MembershipID, err)
		}

		offsite = append(offsite, acc)
	}

	sort.Slice(offsite, func(i, j int) bool {
		oi, _ := fee.ZoneOrder(offsite[i].PostZone)
		oj, _ := fee.ZoneOrder(offsite[j].PostZone)

		if oi != oj {
			return oi < oj
		}

		return directory.CompareID(offsite[i].MembershipID, offsite[j].MembershipID) < 0
	})

	return offsite, nil
}

// PostZoneSummary counts active current members per post zone.
func PostZoneSummary(accounts []directory.Account, current map[string]bool) ([]ZoneCount, error) {
	var zones []string

	for _, acc := range accounts {
		if acc.Active() && current[acc.MembershipID] {
			zones = append(zones, acc.PostZone)
		}
	}

	return countByZone(zones)
}
