package fee_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/membercards/internal/fee"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name      string
		associate bool
		zone      string
		want      int64
	}{
		{name: "AssociateIgnoresZone", associate: true, zone: "Europe", want: 1000},
		{name: "Barbican", zone: "Barbican", want: 500},
		{name: "UK", zone: "UK", want: 800},
		{name: "Europe", zone: "Europe", want: 1100},
		{name: "ZonedInternational", zone: "Zone 2", want: 1400},
		{name: "UnknownZoneFallsThrough", zone: "Atlantis", want: 1400},
		{name: "EmptyZoneFallsThrough", zone: "", want: 1400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fee.Amount(tt.associate, tt.zone))
		})
	}
}

func TestZoneOrder(t *testing.T) {
	farthest, err := fee.ZoneOrder("Zone 3")
	require.NoError(t, err)

	nearest, err := fee.ZoneOrder("Barbican")
	require.NoError(t, err)

	assert.Less(t, farthest, nearest)

	_, err = fee.ZoneOrder("Mars")
	require.Error(t, err)

	var zoneErr *fee.UnknownZoneError
	assert.True(t, errors.As(err, &zoneErr))
	assert.Equal(t, "Mars", zoneErr.Zone)
}

func TestZoneForFee(t *testing.T) {
	zone, err := fee.ZoneForFee(800)
	require.NoError(t, err)
	assert.Equal(t, "UK", zone)

	zone, err = fee.ZoneForFee(1100)
	require.NoError(t, err)
	assert.Equal(t, "EU", zone)

	// Zero fee rows are invalid, not errors.
	zone, err = fee.ZoneForFee(0)
	require.NoError(t, err)
	assert.Empty(t, zone)

	// An unmapped fee must raise, never default.
	_, err = fee.ZoneForFee(725)
	var zoneErr *fee.UnknownZoneError
	require.True(t, errors.As(err, &zoneErr))
	assert.Equal(t, int64(725), zoneErr.Fee)
}
