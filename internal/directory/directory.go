// Package directory carries the member directory records the pipeline
// consumes: accounts, the named occupants of each membership, and the
// estate properties. Name normalization and addressee derivation happen
// upstream; the tables arrive with those columns already populated.
package directory

import (
	"strconv"
	"time"
)

// Account is one membership account. MembershipID is the unique key.
type Account struct {
	MembershipID string
	Associate    bool
	PostZone     string
	Cancelled    *time.Time
	Joined       *time.Time
	PropertyCode string
	Offsite      bool

	Addressee        string
	InformalGreeting string
	AddressLine1     string
	AddressLine2     string
	City             string
	County           string
	PostCode         string
	Country          string
}

// Active reports whether the account has not been cancelled.
func (a Account) Active() bool { return a.Cancelled == nil }

// Occupant is one named person on a membership. Count is the 1-based
// position within the membership; each occupant receives their own card.
type Occupant struct {
	MembershipID string
	Count        int
	FullName     string
	InformalName string
	Email        string
	Telephone    string
	MailingList  bool
}

// Property is one estate property, keyed by property code.
type Property struct {
	Code     string
	Address1 string
	Address2 string
	PostCode string
}

// CompareID orders membership IDs numerically when both sides are
// numeric, falling back to a plain string compare. The exports carry the
// IDs as numbers, so "104" must sort before "1042".
func CompareID(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)

	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
