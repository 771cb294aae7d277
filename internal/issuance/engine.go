package issuance

import (
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/dates"
	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/fee"
)

// Engine decides, per account, whether a new card is due and computes
// the issuance dates when it is.
type Engine struct {
	// Now is the processing instant, normalized to a UTC midnight.
	Now time.Time
	// AdvanceMonths pulls renewals due within the next N months into this
	// run. The window matches anyone who could possibly renew in it, which
	// is broader than the members who actually held a card then; it stays
	// off unless explicitly configured.
	AdvanceMonths int
	// IncludeAnticipatory issues to members who cannot cover the fee,
	// marking the record instead of skipping the member.
	IncludeAnticipatory bool
}

// Decide evaluates one active account against its balance and renewal
// state. The second return is false when no issuance is due.
func (e Engine) Decide(acc directory.Account, balance int64, state State) (Record, bool) {
	amount := fee.Amount(acc.Associate, acc.PostZone)
	canAfford := balance >= amount

	if !e.due(state, canAfford) {
		return Record{}, false
	}

	issueDate := e.Now
	if !state.Renewal.IsZero() {
		issueDate = dates.MaxDate(e.Now, state.Renewal)
	}

	renewal := dates.AddMonthStarts(issueDate, 12)

	return Record{
		MembershipID: acc.MembershipID,
		Processing:   e.Now,
		CardIssuance: issueDate,
		Renewal:      renewal,
		CardEnd:      dates.MonthEnd(renewal),
		Fee:          amount,
		Count:        state.Count,
		Anticipatory: !canAfford,
	}, true
}

// due applies the renewal filter: no prior issuance, a renewal date that
// has arrived, or a renewal falling inside the advance window.
func (e Engine) due(state State, canAfford bool) bool {
	due := state.Renewal.IsZero() || !e.Now.Before(state.Renewal)

	if !due && e.AdvanceMonths > 0 {
		limit := dates.MonthEndOffset(e.Now, e.AdvanceMonths)
		due = !e.Now.After(state.Renewal) && state.Renewal.Before(limit)
	}

	if !e.IncludeAnticipatory && !canAfford {
		return false
	}

	return due
}
