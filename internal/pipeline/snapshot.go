// Package pipeline wires the renewal run together: load the full input
// snapshot, decide issuances, assemble batches, reconcile postage. One
// invocation processes one snapshot; nothing persists between runs.
package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/MrJamesThe3rd/membercards/internal/batch"
	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
	"github.com/MrJamesThe3rd/membercards/internal/ledger"
	"github.com/MrJamesThe3rd/membercards/internal/preprint"
	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

// Snapshot is the full in-memory copy of every input table. All decision
// stages run over it without further I/O.
type Snapshot struct {
	Accounts     []directory.Account
	AccountsByID map[string]directory.Account
	Occupants    []directory.Occupant
	Properties   map[string]directory.Property
	Payments     []ledger.Payment
	History      []issuance.Record
	Reprints     []issuance.ForceReprint
	Preprints    *preprint.Pool
	Competitions batch.Competitions
}

// LoadSnapshot reads every input table through the source. Any missing
// required table fails the whole load; the run produces no partial
// output from a partial snapshot.
func LoadSnapshot(src sheet.Source, log *logrus.Logger) (*Snapshot, error) {
	snap := &Snapshot{}

	load := func(name, sheetName string) (*sheet.Table, error) {
		log.WithField("table", name).Debug("loading input table")

		t, err := src.Load(name, sheetName)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}

		return t, nil
	}

	accountsTbl, err := load("Accounts", "Accounts")
	if err != nil {
		return nil, err
	}

	if snap.Accounts, err = directory.ParseAccounts(accountsTbl); err != nil {
		return nil, fmt.Errorf("parsing accounts: %w", err)
	}

	snap.AccountsByID = make(map[string]directory.Account, len(snap.Accounts))
	for _, acc := range snap.Accounts {
		snap.AccountsByID[acc.MembershipID] = acc
	}

	occupantsTbl, err := load("Members", "Members")
	if err != nil {
		return nil, err
	}

	if snap.Occupants, err = directory.ParseOccupants(occupantsTbl); err != nil {
		return nil, fmt.Errorf("parsing members: %w", err)
	}

	propertiesTbl, err := load("Properties", "Properties")
	if err != nil {
		return nil, err
	}

	if snap.Properties, err = directory.ParseProperties(propertiesTbl); err != nil {
		return nil, fmt.Errorf("parsing properties: %w", err)
	}

	for _, category := range ledger.Categories {
		paymentsTbl, err := load(category, "Payments")
		if err != nil {
			return nil, err
		}

		payments, err := ledger.ParsePayments(paymentsTbl)
		if err != nil {
			return nil, fmt.Errorf("parsing %s payments: %w", category, err)
		}

		snap.Payments = append(snap.Payments, payments...)
	}

	historyTbl, err := load("Card Issuances", "Card Issuance")
	if err != nil {
		return nil, err
	}

	if snap.History, err = issuance.ParseHistory(historyTbl); err != nil {
		return nil, fmt.Errorf("parsing issuance history: %w", err)
	}

	reprintsTbl, err := load("Force Reprints", "Forced Reprints")
	if err != nil {
		return nil, err
	}

	snap.Reprints = issuance.ParseForceReprints(reprintsTbl)

	preprintsTbl, err := load("Preprints", "Preprints")
	if err != nil {
		return nil, err
	}

	snap.Preprints = preprint.ParsePool(preprintsTbl)

	competitionsTbl, err := load("Competitions", "Junior Photography Competition")
	if err != nil {
		return nil, err
	}

	if snap.Competitions, err = batch.ParseCompetitions(competitionsTbl); err != nil {
		return nil, fmt.Errorf("parsing competitions: %w", err)
	}

	log.WithFields(logrus.Fields{
		"accounts":  len(snap.Accounts),
		"occupants": len(snap.Occupants),
		"payments":  len(snap.Payments),
		"issuances": len(snap.History),
	}).Info("snapshot loaded")

	return snap, nil
}
