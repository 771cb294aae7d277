// Package issuance implements the card reissuance decision engine: which
// memberships are due a new card, what dates the card carries, and how
// forced reprints override the natural renewal cycle.
package issuance

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

// Record is one card issuance, historical or newly computed.
//
// Invariants for computed records: Renewal is CardIssuance plus twelve
// month starts, CardEnd is the last day of Renewal's month. A zero
// Renewal on a historical record means the source row had none.
type Record struct {
	MembershipID string
	Processing   time.Time
	CardIssuance time.Time
	Renewal      time.Time
	CardEnd      time.Time
	Fee          int64 // pence; zero for forced reprints
	Count        int   // issuances before this one
	Anticipatory bool  // issued despite insufficient balance
}

// Issue is a merged issuance carrying its letter-batch attributes.
type Issue struct {
	Record

	LetterDate       time.Time
	PreviousIssuance bool
	Preprinted       bool
}

// ParseHistory converts the Card Issuance table into historical records.
// Missing dates stay zero: a row without a renewal date counts as "no
// prior issuance" downstream, never as an error.
func ParseHistory(t *sheet.Table) ([]Record, error) {
	records := make([]Record, 0, t.Len())

	for _, row := range t.Rows {
		id := t.Cell(row, "Membership ID")
		if id == "" {
			continue
		}

		rec := Record{MembershipID: id}
		rec.Processing, _ = sheet.ParseDate(t.Cell(row, "Processing Date"))
		rec.CardIssuance, _ = sheet.ParseDate(t.Cell(row, "Card Issuance"))
		rec.Renewal, _ = sheet.ParseDate(t.Cell(row, "Renewal Date"))
		rec.CardEnd, _ = sheet.ParseDate(t.Cell(row, "Card End Date"))

		if cell := t.Cell(row, "Membership Fee"); cell != "" {
			pence, err := sheet.ParsePence(cell)
			if err != nil {
				return nil, fmt.Errorf("membership %s: bad fee: %w", id, err)
			}

			rec.Fee = pence
		}

		records = append(records, rec)
	}

	return records, nil
}

// State is a membership's renewal position: its latest renewal date and
// how many issuances it has had. A zero Renewal means no prior issuance.
type State struct {
	Renewal time.Time
	Count   int
}

// RenewalStates folds history and resolved forced reprints into one
// state per membership, taking the latest renewal date and counting
// dated issuances.
func RenewalStates(history, forced []Record) map[string]State {
	states := make(map[string]State)

	fold := func(records []Record) {
		for _, rec := range records {
			if rec.Renewal.IsZero() {
				// Undated rows contribute nothing to the state but keep
				// the membership known.
				if _, ok := states[rec.MembershipID]; !ok {
					states[rec.MembershipID] = State{}
				}

				continue
			}

			st := states[rec.MembershipID]
			if rec.Renewal.After(st.Renewal) {
				st.Renewal = rec.Renewal
			}

			st.Count++
			states[rec.MembershipID] = st
		}
	}

	fold(history)
	fold(forced)

	return states
}
