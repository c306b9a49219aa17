package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
)

func TestSyntheticShape(t *testing.T) {
	cfg := SyntheticConfig{Stations: 5, StartYear: 1960, EndYear: 1962, Seed: 42}
	ds := Synthetic(cfg)

	require.Len(t, ds.Stations, 5)
	require.Len(t, ds.Records, 5*3*12)

	for _, st := range ds.Stations {
		assert.GreaterOrEqual(t, st.Latitude, -60.0)
		assert.LessOrEqual(t, st.Latitude, 80.0)
		assert.GreaterOrEqual(t, st.Longitude, -180.0)
		assert.LessOrEqual(t, st.Longitude, 180.0)
		assert.NotEmpty(t, st.Country)
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	cfg := SyntheticConfig{Stations: 3, StartYear: 1990, EndYear: 1991, Seed: 7}
	a := Synthetic(cfg)
	b := Synthetic(cfg)

	assert.Equal(t, a.Stations, b.Stations)
	assert.Equal(t, a.Records, b.Records)
}

// Region labels on preprocessed synthetic data must match the station
// latitude for every record.
func TestPreprocessRegionLabels(t *testing.T) {
	ds := Synthetic(SyntheticConfig{Stations: 20, StartYear: 1960, EndYear: 1961, Seed: 1})
	obs := Preprocess(ds)
	require.Len(t, obs, 20*2*12)

	for _, o := range obs {
		assert.Equal(t, climate.RegionForLatitude(o.Latitude), o.Region)
		assert.Equal(t, climate.DecadeOf(o.Year), o.Decade)
	}
}

func TestPreprocessDropsUnknownStations(t *testing.T) {
	ds := Dataset{
		Stations: []climate.Station{{ID: "A", Latitude: 10}},
		Records: []climate.Record{
			{StationID: "A", Year: 2000, Month: 1, TempTenths: 250},
			{StationID: "GHOST", Year: 2000, Month: 1, TempTenths: 250},
			{StationID: "A", Year: 2000, Month: 13, TempTenths: 250},
		},
	}
	obs := Preprocess(ds)
	require.Len(t, obs, 1)
	assert.Equal(t, 25.0, obs[0].TempC)
	assert.Equal(t, climate.SeasonWinter, obs[0].Season)
	assert.Equal(t, climate.RegionTropicalN, obs[0].Region)
}
