package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MrJamesThe3rd/membercards/internal/batch"
	"github.com/MrJamesThe3rd/membercards/internal/config"
	"github.com/MrJamesThe3rd/membercards/internal/dates"
	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
	"github.com/MrJamesThe3rd/membercards/internal/ledger"
	"github.com/MrJamesThe3rd/membercards/internal/mailing"
	"github.com/MrJamesThe3rd/membercards/internal/postal"
	"github.com/MrJamesThe3rd/membercards/internal/preprint"
)

// Result is everything one run computes, ready for the report writers.
type Result struct {
	RunID   uuid.UUID
	Started time.Time // wall-clock run time, used in output filenames
	Now     time.Time // processing date all decisions are made against

	Issues         []issuance.Issue // merged issuances in canonical order
	UsedPreprints  []preprint.Used
	NewLetters     []batch.LetterEntry
	RenewalLetters []batch.LetterEntry
	Cards          []batch.Card
	Blocks         []batch.Block
	LetterZones    []batch.ZoneCount

	Offsite   []directory.Account
	PostZones []batch.ZoneCount

	Postal *postal.Result

	Segments mailing.Segments
	Details  []mailing.DetailRow
}

// Run executes the full decision pipeline over one snapshot. started is
// the wall-clock run time; all date decisions use its UTC midnight.
func Run(cfg *config.Config, snap *Snapshot, started time.Time, log *logrus.Logger) (*Result, error) {
	result := &Result{
		RunID:   uuid.New(),
		Started: started,
		Now:     dates.Midnight(started),
	}

	runLog := log.WithField("run_id", result.RunID)

	balances := ledger.Balances(snap.Payments)
	runLog.WithField("memberships", len(balances)).Info("balances derived")

	forced := issuance.Resolve(snap.Reprints, snap.History, result.Now)
	runLog.WithFields(logrus.Fields{
		"requested": len(snap.Reprints),
		"resolved":  len(forced),
	}).Info("force reprints resolved")

	states := issuance.RenewalStates(snap.History, forced)
	engine := issuance.Engine{
		Now:                 result.Now,
		AdvanceMonths:       cfg.Renewal.AdvanceMonths,
		IncludeAnticipatory: cfg.Renewal.IncludeAnticipatory,
	}

	var natural []issuance.Record

	for _, acc := range snap.Accounts {
		if !acc.Active() {
			continue
		}

		if rec, due := engine.Decide(acc, balances[acc.MembershipID], states[acc.MembershipID]); due {
			natural = append(natural, rec)
		}
	}

	runLog.WithField("due", len(natural)).Info("renewals decided")

	merged := issuance.Merge(natural, forced, dates.MonthStart(result.Now))
	batch.SortIssues(merged)

	result.Issues = snap.Preprints.Mark(merged)
	result.UsedPreprints = snap.Preprints.UsedStock(result.Issues, snap.AccountsByID)

	result.NewLetters, result.RenewalLetters = batch.Letters(result.Issues, snap.AccountsByID, snap.Occupants)

	var counter batch.Counter
	result.Cards = batch.Cards(result.Issues, snap.AccountsByID, snap.Occupants, snap.Properties, snap.Competitions, &counter)
	result.Blocks = batch.TenUp(result.Cards)

	runLog.WithFields(logrus.Fields{
		"issuances":      len(result.Issues),
		"used_preprints": len(result.UsedPreprints),
		"cards":          len(result.Cards),
	}).Info("batches assembled")

	var err error
	if result.LetterZones, err = batch.LetterPostZones(result.Issues, snap.AccountsByID); err != nil {
		return nil, fmt.Errorf("letter post zones: %w", err)
	}

	current := batch.CurrentMemberships(snap.History, result.Now)

	if result.Offsite, err = batch.OffsiteMembers(snap.Accounts, current); err != nil {
		return nil, fmt.Errorf("offsite members: %w", err)
	}

	if result.PostZones, err = batch.PostZoneSummary(snap.Accounts, current); err != nil {
		return nil, fmt.Errorf("post zone summary: %w", err)
	}

	if result.Postal, err = postal.Reconcile(snap.History, occupantCounts(snap.Occupants), snap.Preprints); err != nil {
		return nil, fmt.Errorf("postal reconciliation: %w", err)
	}

	runLog.WithFields(logrus.Fields{
		"pairs":   len(result.Postal.Pairs),
		"batches": len(result.Postal.Totals),
	}).Info("postal batches reconciled")

	recent := mailing.RecentMemberships(result.Now, snap.History, snap.Accounts)
	result.Segments = mailing.EmailSegments(snap.Occupants, snap.AccountsByID, recent)
	result.Details = mailing.Details(snap.Accounts, snap.Occupants, snap.Properties, current)

	return result, nil
}

// occupantCounts is the number of cards mailed per membership: the
// highest occupant position on the account.
func occupantCounts(occupants []directory.Occupant) map[string]int {
	counts := make(map[string]int)
	for _, occ := range occupants {
		if occ.Count > counts[occ.MembershipID] {
			counts[occ.MembershipID] = occ.Count
		}
	}

	return counts
}
