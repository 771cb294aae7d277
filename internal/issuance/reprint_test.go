package issuance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/membercards/internal/issuance"
)

func TestResolve_ReEmitsValidIssuance(t *testing.T) {
	now := date(2025, 6, 10)
	history := []issuance.Record{
		{MembershipID: "10", CardIssuance: date(2024, 9, 1), Renewal: date(2025, 9, 1), CardEnd: date(2025, 9, 30), Fee: 800},
		{MembershipID: "10", CardIssuance: date(2023, 9, 1), Renewal: date(2024, 9, 1), CardEnd: date(2024, 9, 30), Fee: 800},
		{MembershipID: "11", CardIssuance: date(2023, 1, 1), Renewal: date(2024, 1, 1), CardEnd: date(2024, 1, 31), Fee: 800},
	}

	resolved := issuance.Resolve([]issuance.ForceReprint{
		{MembershipID: "10"},
		{MembershipID: "11"}, // only an expired card: dropped
		{MembershipID: "99"}, // no history at all: dropped
	}, history, now)

	require.Len(t, resolved, 1)

	rec := resolved[0]
	assert.Equal(t, "10", rec.MembershipID)
	assert.Equal(t, now, rec.Processing)
	// Dates come from the unexpired issuance, fee is waived.
	assert.Equal(t, date(2024, 9, 1), rec.CardIssuance)
	assert.Equal(t, date(2025, 9, 1), rec.Renewal)
	assert.Equal(t, date(2025, 9, 30), rec.CardEnd)
	assert.Zero(t, rec.Fee)
	assert.Equal(t, 1, rec.Count)
	assert.False(t, rec.Anticipatory)
}

func TestResolve_ResetAnchorsAtPeriodStart(t *testing.T) {
	now := date(2025, 6, 10)
	history := []issuance.Record{
		{MembershipID: "10", CardIssuance: date(2024, 9, 1), Renewal: date(2025, 9, 1), CardEnd: date(2025, 9, 30), Fee: 800},
	}

	resolved := issuance.Resolve([]issuance.ForceReprint{
		{MembershipID: "10", Reset: true},
	}, history, now)

	require.Len(t, resolved, 1)

	rec := resolved[0]
	assert.Equal(t, date(2025, 6, 1), rec.CardIssuance)
	assert.Equal(t, date(2026, 6, 1), rec.Renewal)
	assert.Equal(t, date(2026, 6, 30), rec.CardEnd)
	assert.Zero(t, rec.Fee)
}

func TestMerge_ForcedReplacesNatural(t *testing.T) {
	periodStart := date(2025, 6, 1)

	natural := []issuance.Record{
		{MembershipID: "10", CardIssuance: date(2025, 6, 10), Count: 1},
		{MembershipID: "20", CardIssuance: date(2025, 6, 10), Count: 0},
	}
	forced := []issuance.Record{
		{MembershipID: "10", CardIssuance: date(2024, 9, 1), Count: 1},
	}

	issues := issuance.Merge(natural, forced, periodStart)
	require.Len(t, issues, 2)

	byID := make(map[string]issuance.Issue)
	for _, is := range issues {
		byID[is.MembershipID] = is
	}

	// The forced reprint suppressed the natural issuance for 10.
	assert.Zero(t, byID["10"].Fee)
	assert.Equal(t, date(2024, 9, 1), byID["10"].CardIssuance)
	// An old card issuance clamps the letter date to the period start.
	assert.Equal(t, periodStart, byID["10"].LetterDate)
	assert.True(t, byID["10"].PreviousIssuance)

	assert.Equal(t, date(2025, 6, 10), byID["20"].LetterDate)
	assert.False(t, byID["20"].PreviousIssuance)
}
