package issuance

import (
	"sort"
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/dates"
	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

// ForceReprint is an administrative request to reissue a card outside
// the normal cycle.
type ForceReprint struct {
	MembershipID string
	// Reset starts a fresh issuance period anchored at the period start
	// instead of re-emitting the existing card's dates.
	Reset bool
}

// ParseForceReprints converts the Forced Reprints table.
func ParseForceReprints(t *sheet.Table) []ForceReprint {
	requests := make([]ForceReprint, 0, t.Len())

	for _, row := range t.Rows {
		id := t.Cell(row, "Membership ID")
		if id == "" {
			continue
		}

		requests = append(requests, ForceReprint{
			MembershipID: id,
			Reset:        sheet.ParseBool(t.Cell(row, "Reset Issuance")),
		})
	}

	return requests
}

// validSummary aggregates a membership's unexpired issuances: the latest
// of each date and how many there are.
type validSummary struct {
	cardIssuance time.Time
	renewal      time.Time
	cardEnd      time.Time
	count        int
}

// Resolve turns force-reprint requests into zero-fee issuance records.
// Each request is inner-joined against the membership's still-valid
// issuances (card end after now); a request with none is dropped.
// Output is ordered by membership ID.
func Resolve(requests []ForceReprint, history []Record, now time.Time) []Record {
	summaries := make(map[string]validSummary)

	for _, rec := range history {
		if !rec.CardEnd.After(now) {
			continue
		}

		s := summaries[rec.MembershipID]
		s.cardIssuance = dates.MaxDate(s.cardIssuance, rec.CardIssuance)
		s.renewal = dates.MaxDate(s.renewal, rec.Renewal)
		s.cardEnd = dates.MaxDate(s.cardEnd, rec.CardEnd)
		s.count++
		summaries[rec.MembershipID] = s
	}

	periodStart := dates.MonthStart(now)
	resolved := make([]Record, 0, len(requests))

	for _, req := range requests {
		summary, ok := summaries[req.MembershipID]
		if !ok {
			continue
		}

		rec := Record{
			MembershipID: req.MembershipID,
			Processing:   now,
			Fee:          0,
			Count:        summary.count,
			Anticipatory: false,
		}

		if req.Reset {
			rec.CardIssuance = periodStart
			rec.Renewal = dates.AddMonthStarts(periodStart, 12)
			rec.CardEnd = dates.MonthEnd(rec.Renewal)
		} else {
			rec.CardIssuance = summary.cardIssuance
			rec.Renewal = summary.renewal
			rec.CardEnd = summary.cardEnd
		}

		resolved = append(resolved, rec)
	}

	sort.Slice(resolved, func(i, j int) bool {
		return directory.CompareID(resolved[i].MembershipID, resolved[j].MembershipID) < 0
	})

	return resolved
}

// Merge combines natural issuances with forced reprints, attaching the
// letter-batch attributes. A forced reprint replaces any naturally
// computed issuance for the same membership in the run.
func Merge(natural, forced []Record, periodStart time.Time) []Issue {
	overridden := make(map[string]bool, len(forced))
	for _, rec := range forced {
		overridden[rec.MembershipID] = true
	}

	issues := make([]Issue, 0, len(natural)+len(forced))

	add := func(rec Record) {
		issues = append(issues, Issue{
			Record:           rec,
			LetterDate:       dates.MaxDate(rec.CardIssuance, periodStart),
			PreviousIssuance: rec.Count > 0,
		})
	}

	for _, rec := range natural {
		if overridden[rec.MembershipID] {
			continue
		}

		add(rec)
	}

	for _, rec := range forced {
		add(rec)
	}

	return issues
}
