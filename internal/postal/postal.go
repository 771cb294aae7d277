// Package postal reconciles historical card issuances into fee-bearing
// postal batches, so the postage spent per zone can be checked against
// the fees charged.
package postal

import (
	"fmt"
	"sort"

	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/fee"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
	"github.com/MrJamesThe3rd/membercards/internal/preprint"
)

// Pair is one ordered pair of a membership's own issuances, including an
// issuance paired with itself, with the classification flags and the
// resolved batch row.
type Pair struct {
	MembershipID string
	Original     issuance.Record
	Joined       issuance.Record
	Members      int  // cards mailed for the membership
	Preprinted   bool // preprinted stock existed for the original issuance

	// HasFee marks the fee-charging event of a batch run: the original
	// charged a fee and the two processing dates coincide.
	HasFee bool
	// PreviousProspective marks a free issuance that followed the joined
	// one.
	PreviousProspective bool
	// ClosestProspective keeps only the most recent match per
	// (membership, original, fees, prospective) group.
	ClosestProspective bool
	// ReplaceFee takes the batch fee from the joined issuance when the
	// original was free, the joined was paid, and this is the closest
	// prospective match.
	ReplaceFee bool

	Resolved Resolved
}

// Resolved is the batch row a pair contributes.
type Resolved struct {
	Batch string // YYYYMM batch key
	Zone  string
	Fee   int64
	Valid bool // fee > 0; invalid rows are excluded from aggregation

	Letters           int
	Cards             int
	PreprintedLetters int
	PreprintedCards   int
}

// Total is the per-(batch, zone) aggregate.
type Total struct {
	Batch string
	Zone  string

	Letters           int
	Cards             int
	PreprintedLetters int
	PreprintedCards   int
}

// Result carries the three reconciliation outputs: the raw working
// pairs, the zone-resolved valid rows, and the aggregated batches.
type Result struct {
	Pairs    []Pair
	Resolved []Resolved
	Totals   []Total
}

// Reconcile classifies every self-joined issuance pair and aggregates
// the valid ones into postal batches. members maps a membership to its
// occupant count (cards mailed per letter).
func Reconcile(history []issuance.Record, members map[string]int, pool *preprint.Pool) (*Result, error) {
	pairs := buildPairs(history, members, pool)
	classify(pairs)

	result := &Result{Pairs: pairs}
	totals := make(map[string]*Total)

	for i := range pairs {
		resolved, err := resolve(&pairs[i])
		if err != nil {
			return nil, fmt.Errorf("membership %s: %w", pairs[i].MembershipID, err)
		}

		pairs[i].Resolved = resolved
		if !resolved.Valid {
			continue
		}

		result.Resolved = append(result.Resolved, resolved)

		key := resolved.Batch + "/" + resolved.Zone
		total, ok := totals[key]
		if !ok {
			total = &Total{Batch: resolved.Batch, Zone: resolved.Zone}
			totals[key] = total
		}

		total.Letters += resolved.Letters
		total.Cards += resolved.Cards
		total.PreprintedLetters += resolved.PreprintedLetters
		total.PreprintedCards += resolved.PreprintedCards
	}

	for _, total := range totals {
		result.Totals = append(result.Totals, *total)
	}

	sort.Slice(result.Totals, func(i, j int) bool {
		a, b := result.Totals[i], result.Totals[j]
		if a.Batch != b.Batch {
			return a.Batch < b.Batch
		}

		return a.Zone < b.Zone
	})

	return result, nil
}

// buildPairs self-joins each membership's issuances and orders the pairs
// for the duplicate scan: joined processing date descending, then joined
// card issuance descending, with membership and the original record's
// dates as further tiebreaks so equal timestamps still order
// deterministically regardless of input row order.
func buildPairs(history []issuance.Record, members map[string]int, pool *preprint.Pool) []Pair {
	byMembership := make(map[string][]issuance.Record)
	for _, rec := range history {
		byMembership[rec.MembershipID] = append(byMembership[rec.MembershipID], rec)
	}

	type ordered struct {
		pair             Pair
		origIdx, joinIdx int
	}

	var all []ordered

	for id, records := range byMembership {
		for oi, original := range records {
			for ji, joined := range records {
				all = append(all, ordered{
					pair: Pair{
						MembershipID: id,
						Original:     original,
						Joined:       joined,
						Members:      members[id],
						Preprinted:   pool.Contains(id, original.CardIssuance),
					},
					origIdx: oi,
					joinIdx: ji,
				})
			}
		}
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]

		if !a.pair.Joined.Processing.Equal(b.pair.Joined.Processing) {
			return a.pair.Joined.Processing.After(b.pair.Joined.Processing)
		}

		if !a.pair.Joined.CardIssuance.Equal(b.pair.Joined.CardIssuance) {
			return a.pair.Joined.CardIssuance.After(b.pair.Joined.CardIssuance)
		}

		if cmp := directory.CompareID(a.pair.MembershipID, b.pair.MembershipID); cmp != 0 {
			return cmp < 0
		}

		if !a.pair.Original.Processing.Equal(b.pair.Original.Processing) {
			return a.pair.Original.Processing.After(b.pair.Original.Processing)
		}

		if !a.pair.Original.CardIssuance.Equal(b.pair.Original.CardIssuance) {
			return a.pair.Original.CardIssuance.After(b.pair.Original.CardIssuance)
		}

		// Fully duplicated records: fall back to history position.
		if a.origIdx != b.origIdx {
			return a.origIdx < b.origIdx
		}

		return a.joinIdx < b.joinIdx
	})

	pairs := make([]Pair, len(all))
	for i, o := range all {
		pairs[i] = o.pair
	}

	return pairs
}

// dedupKey groups pairs for the closest-prospective scan.
type dedupKey struct {
	membershipID        string
	originalProcessing  string
	originalFee         int64
	joinedFee           int64
	previousProspective bool
}

func classify(pairs []Pair) {
	seen := make(map[dedupKey]bool)

	for i := range pairs {
		p := &pairs[i]

		p.HasFee = p.Original.Fee > 0 && p.Original.Processing.Equal(p.Joined.Processing)
		p.PreviousProspective = p.Original.Fee == 0 && p.Original.Processing.After(p.Joined.Processing)

		key := dedupKey{
			membershipID:        p.MembershipID,
			originalProcessing:  p.Original.Processing.Format("2006-01-02"),
			originalFee:         p.Original.Fee,
			joinedFee:           p.Joined.Fee,
			previousProspective: p.PreviousProspective,
		}

		p.ClosestProspective = !seen[key]
		seen[key] = true

		p.ReplaceFee = p.Original.Fee == 0 && p.Joined.Fee > 0 &&
			p.PreviousProspective && p.ClosestProspective
	}
}

func resolve(p *Pair) (Resolved, error) {
	var amount int64

	switch {
	case p.HasFee:
		amount = p.Original.Fee
	case p.ReplaceFee:
		amount = p.Joined.Fee
	}

	zone, err := fee.ZoneForFee(amount)
	if err != nil {
		return Resolved{}, err
	}

	resolved := Resolved{
		Zone:    zone,
		Fee:     amount,
		Valid:   amount > 0,
		Letters: 1,
		Cards:   p.Members,
	}

	batchDate := p.Original.Processing
	if p.Preprinted {
		// Preprinted stock mails with the batch its card issuance belongs
		// to, and counts against the preprinted columns.
		batchDate = p.Original.CardIssuance
		resolved.Letters, resolved.PreprintedLetters = 0, resolved.Letters
		resolved.Cards, resolved.PreprintedCards = 0, resolved.Cards
	}

	resolved.Batch = batchDate.Format("200601")

	return resolved, nil
}
