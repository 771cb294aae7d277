package mailing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/membercards/internal/directory"
	"github.com/MrJamesThe3rd/membercards/internal/issuance"
	"github.com/MrJamesThe3rd/membercards/internal/mailing"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecentMemberships(t *testing.T) {
	now := date(2025, 6, 15)
	joined := date(2025, 2, 1)
	longAgo := date(2020, 1, 1)

	history := []issuance.Record{
		{MembershipID: "1", CardEnd: date(2024, 9, 30)}, // within 13 months
		{MembershipID: "2", CardEnd: date(2023, 1, 31)}, // lapsed long ago
	}
	accounts := []directory.Account{
		{MembershipID: "3", Joined: &joined},
		{MembershipID: "4", Joined: &longAgo},
	}

	recent := mailing.RecentMemberships(now, history, accounts)

	assert.True(t, recent["1"])
	assert.False(t, recent["2"])
	assert.True(t, recent["3"])
	assert.False(t, recent["4"])
}

func TestEmailSegments(t *testing.T) {
	occupants := []directory.Occupant{
		{MembershipID: "2", Count: 1, FullName: "Norma Normal", Email: "norma@example.org", MailingList: true},
		{MembershipID: "1", Count: 1, FullName: "Alan Associate", InformalName: "Alan", Email: "alan@example.org"},
		{MembershipID: "2", Count: 2, FullName: "No Email"},
		{MembershipID: "9", Count: 1, FullName: "Larry Lapsed", Email: "larry@example.org"},
	}
	accounts := map[string]directory.Account{
		"1": {MembershipID: "1", Associate: true},
		"2": {MembershipID: "2"},
		"9": {MembershipID: "9"},
	}
	recent := map[string]bool{"1": true, "2": true}

	segments := mailing.EmailSegments(occupants, accounts, recent)

	require.Len(t, segments.Associates, 1)
	assert.Equal(t, "alan@example.org", segments.Associates[0].Email)
	assert.Equal(t, "Alan", segments.Associates[0].InformalName)

	require.Len(t, segments.Normals, 1)
	assert.Equal(t, "norma@example.org", segments.Normals[0].Email)
	assert.Equal(t, "Norma Normal", segments.Normals[0].InformalName, "informal name falls back to full name")

	require.Len(t, segments.MailingList, 1)
	assert.Equal(t, "2", segments.MailingList[0].MembershipID)
}

func TestDetails_OffsiteCorrespondence(t *testing.T) {
	accounts := []directory.Account{
		{MembershipID: "1", PropertyCode: "SH1"},
		{MembershipID: "2", PropertyCode: "BJ2", Offsite: true, AddressLine1: "9 Elsewhere Road", City: "York", PostCode: "YO1 1AA", Country: "United Kingdom"},
	}
	occupants := []directory.Occupant{
		{MembershipID: "1", Count: 1, FullName: "On Site"},
		{MembershipID: "2", Count: 1, FullName: "Off Site"},
	}
	properties := map[string]directory.Property{
		"SH1": {Code: "SH1", Address1: "1 Seddon House", PostCode: "EC2Y 8BX"},
		"BJ2": {Code: "BJ2", Address1: "2 Ben Jonson House", PostCode: "EC2Y 8NH"},
	}
	current := map[string]bool{"1": true, "2": true}

	rows := mailing.Details(accounts, occupants, properties, current)
	require.Len(t, rows, 2)

	onsite := rows[0]
	assert.Equal(t, "1 Seddon House", onsite.FlatAddressLine1)
	assert.Equal(t, "London", onsite.FlatCity)
	assert.Empty(t, onsite.CorrAddressLine1, "onsite members get no correspondence address")

	offsite := rows[1]
	assert.Equal(t, "2 Ben Jonson House", offsite.FlatAddressLine1)
	assert.Equal(t, "9 Elsewhere Road", offsite.CorrAddressLine1)
	assert.Equal(t, "York", offsite.CorrCity)
}
