// Package ledger derives running balances from the association's payment
// workbooks. Each workbook covers one payment channel; a membership's
// balance is the signed sum of every row across all of them.
package ledger

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

// Categories names the payment workbooks in load order. Each carries a
// "Payments" sheet with the same column set.
var Categories = []string{"Card Issuances", "Cheques", "Gifts", "PayPal", "Statements"}

// Payment is one ledger row. Amount is signed pence: payments in,
// charges out.
type Payment struct {
	MembershipID string
	Date         time.Time
	Amount       int64
}

// ParsePayments converts one payment table. Rows without a membership ID
// or date are skipped; an unparseable amount on a dated row is an error,
// since a silently dropped payment would skew the member's balance.
func ParsePayments(t *sheet.Table) ([]Payment, error) {
	payments := make([]Payment, 0, t.Len())

	for _, row := range t.Rows {
		id := t.Cell(row, "Membership ID")
		if id == "" {
			continue
		}

		date, ok := sheet.ParseDate(t.Cell(row, "Date"))
		if !ok {
			continue
		}

		amount, err := sheet.ParsePence(t.Cell(row, "Amount"))
		if err != nil {
			return nil, fmt.Errorf("membership %s, %s: bad amount: %w", id, date.Format(time.DateOnly), err)
		}

		payments = append(payments, Payment{MembershipID: id, Date: date, Amount: amount})
	}

	return payments, nil
}

// Balances sums payments into a per-membership balance. Memberships with
// no rows are simply absent; callers treat that as zero.
func Balances(payments []Payment) map[string]int64 {
	balances := make(map[string]int64)
	for _, p := range payments {
		balances[p.MembershipID] += p.Amount
	}

	return balances
}
