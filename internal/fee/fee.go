// Package fee holds the membership fee policy and the postal-zone
// tables derived from it. Amounts are integer pence throughout.
package fee

import "fmt"

// Fee tiers in pence.
const (
	Associate     int64 = 1000
	Barbican      int64 = 500
	UK            int64 = 800
	Europe        int64 = 1100
	International int64 = 1400
)

// Amount returns the annual membership fee for an account. Associates pay
// a flat rate; everyone else is tiered by post zone, with any zone not in
// the table charged the international rate. Total: never fails.
func Amount(associate bool, postZone string) int64 {
	if associate {
		return Associate
	}

	switch postZone {
	case "Barbican":
		return Barbican
	case "UK":
		return UK
	case "Europe":
		return Europe
	default:
		return International
	}
}

// UnknownZoneError reports a post zone or fee with no table entry.
// Zone lookups for accounting must fail loudly: a silently defaulted
// zone would mis-state the postage reconciliation.
type UnknownZoneError struct {
	Zone string
	Fee  int64
}

func (e *UnknownZoneError) Error() string {
	if e.Zone != "" {
		return fmt.Sprintf("no such post zone %q", e.Zone)
	}

	return fmt.Sprintf("no postal zone for fee %d", e.Fee)
}

// zoneOrder ranks post zones in outward mailing order.
var zoneOrder = map[string]int{
	"Zone 3":   0,
	"Zone 2":   1,
	"Zone 1":   2,
	"Europe":   3,
	"UK":       4,
	"Barbican": 5,
}

// ZoneOrder returns the mailing sort rank of a post zone.
func ZoneOrder(postZone string) (int, error) {
	order, ok := zoneOrder[postZone]
	if !ok {
		return 0, &UnknownZoneError{Zone: postZone}
	}

	return order, nil
}

// feeZones maps a charged fee back to the postal zone it was charged
// for, used when reconciling historical batches.
var feeZones = map[int64]string{
	Barbican:  "UK",
	UK:        "UK",
	Associate: "UK",
	Europe:    "EU",
	International: "International",
}

// ZoneForFee resolves the postal zone a historical fee belongs to.
// A zero fee has no zone and returns ("", nil); the caller drops the row
// as invalid. Any other unmapped fee is an error.
func ZoneForFee(pence int64) (string, error) {
	if pence == 0 {
		return "", nil
	}

	zone, ok := feeZones[pence]
	if !ok {
		return "", &UnknownZoneError{Fee: pence}
	}

	return zone, nil
}
