// Package preprint cross-references computed issuances against stock
// that was already printed in an earlier batch, so nothing gets printed
// twice.
package preprint

import (
	"time"

	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

// Key identifies a piece of preprinted stock. Each (membership, letter
// date) pair is unique by construction.
type Key struct {
	MembershipID string
	LetterDate   string // yyyy-mm-dd
}

func NewKey(membershipID string, letterDate time.Time) Key {
	return Key{MembershipID: membershipID, LetterDate: letterDate.Format(time.DateOnly)}
}

// Pool is the preprinted stock lookup.
type Pool struct {
	entries map[Key]struct{}
}

// ParsePool builds the pool from the Preprints table. Only the join key
// matters here; the stock's address columns were fixed when it was
// printed.
func ParsePool(t *sheet.Table) *Pool {
	pool := &Pool{entries: make(map[Key]struct{}, t.Len())}

	for _, row := range t.Rows {
		id := t.Cell(row, "Membership Number")
		if id == "" {
			continue
		}

		letterDate, ok := sheet.ParseDate(t.Cell(row, "Letter Date"))
		if !ok {
			continue
		}

		pool.entries[NewKey(id, letterDate)] = struct{}{}
	}

	return pool
}

// NewPool builds a pool from explicit keys.
func NewPool(keys ...Key) *Pool {
	pool := &Pool{entries: make(map[Key]struct{}, len(keys))}
	for _, k := range keys {
		pool.entries[k] = struct{}{}
	}

	return pool
}

// Contains reports whether stock exists for the key.
func (p *Pool) Contains(membershipID string, letterDate time.Time) bool {
	_, ok := p.entries[NewKey(membershipID, letterDate)]
	return ok
}

// Mark sets the Preprinted flag on every issue whose (membership, letter
// date) matches stock in the pool. Idempotent: the flag is recomputed
// from the key on every call.
func (p *Pool) Mark(issues []issuance.Issue) []issuance.Issue {
	marked := make([]issuance.Issue, len(issues))

	for i, issue := range issues {
		issue.Preprinted = p.Contains(issue.MembershipID, issue.LetterDate)
		marked[i] = issue
	}

	return marked
}

// Used is one piece of stock consumed by this run, reported so the
// physical cards can be pulled from the preprinted pile.
type Used struct {
	MembershipID string
	LetterDate   time.Time
	Addressee    string
	AddressLine1 string
}

// UsedStock lists the pool entries matched by the run's issues, with the
// account's current addressee attached. Order follows the issue order.
func (p *Pool) UsedStock(issues []issuance.Issue, accounts map[string]directory.Account) []Used {
	var used []Used

	for _, issue := range issues {
		if !issue.Preprinted {
			continue
		}

		acc := accounts[issue.MembershipID]
		used = append(used, Used{
			MembershipID: issue.MembershipID,
			LetterDate:   issue.LetterDate,
			Addressee:    acc.Addressee,
			AddressLine1: acc.AddressLine1,
		})
	}

	return used
}
