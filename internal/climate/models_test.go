package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionForLatitude(t *testing.T) {
	cases := []struct {
		lat  float64
		want Region
	}{
		{-90, RegionAntarctica},
		{-60.0001, RegionAntarctica},
		{-60, RegionAntarctica},
		{-59.999, RegionSouthern},
		{-30, RegionSouthern},
		{-0.5, RegionTropicalS},
		{0, RegionTropicalS},
		{0.5, RegionTropicalN},
		{30, RegionTropicalN},
		{45.2, RegionNorthern},
		{60, RegionNorthern},
		{60.001, RegionArctic},
		{90, RegionArctic},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RegionForLatitude(tc.lat), "lat %v", tc.lat)
	}
}

// Every latitude in [-90, 90] must map to one of the six bands.
func TestRegionBandsExhaustive(t *testing.T) {
	known := map[Region]bool{}
	for _, r := range Regions {
		known[r] = true
	}
	for lat := -90.0; lat <= 90.0; lat += 0.25 {
		r := RegionForLatitude(lat)
		assert.True(t, known[r], "lat %v mapped to unknown region %q", lat, r)
	}
}

func TestSeasonForMonth(t *testing.T) {
	want := map[int]Season{
		12: SeasonWinter, 1: SeasonWinter, 2: SeasonWinter,
		3: SeasonSpring, 4: SeasonSpring, 5: SeasonSpring,
		6: SeasonSummer, 7: SeasonSummer, 8: SeasonSummer,
		9: SeasonFall, 10: SeasonFall, 11: SeasonFall,
	}
	for m, season := range want {
		got, err := SeasonForMonth(m)
		require.NoError(t, err)
		assert.Equal(t, season, got, "month %d", m)
	}

	_, err := SeasonForMonth(0)
	assert.Error(t, err)
	_, err = SeasonForMonth(13)
	assert.Error(t, err)
}

func TestDecadeOf(t *testing.T) {
	assert.Equal(t, 1960, DecadeOf(1960))
	assert.Equal(t, 1960, DecadeOf(1969))
	assert.Equal(t, 2020, DecadeOf(2020))
}
