package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenjiCoder24/climate-anlysis/internal/analysis"
	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
)

func sampleResults() analysis.Results {
	base := 11.5
	anom := 0.5
	return analysis.Results{
		RunID: "test-run",
		AnnualGlobal: []analysis.AnnualGlobalRow{
			{Year: 2000, TempC: 14.2, Anomaly: -0.1},
			{Year: 2001, TempC: 14.4, Anomaly: 0.1},
		},
		AnnualRegional: []analysis.AnnualRegionalRow{
			{Year: 2000, Region: climate.RegionNorthern, TempC: 12.0, Baseline: &base, Anomaly: &anom},
			{Year: 2000, Region: climate.RegionArctic, TempC: -4.0}, // no baseline data
		},
		Seasonal: []analysis.SeasonalRow{
			{Year: 2000, Season: climate.SeasonWinter, TempC: 2.5},
		},
		Decadal: []analysis.DecadalRow{
			{Decade: 2000, Region: climate.RegionNorthern, TempC: 12.1},
		},
		DecadalChanges: []analysis.DecadalChangeRow{
			{Decade: 2000, Region: climate.RegionNorthern, Change: 0.3},
		},
		ExtremeCounts: []analysis.ExtremeCountRow{
			{Decade: 2000, Region: climate.RegionNorthern, Hot: 4, Cold: 2},
		},
		Observations: []climate.Observation{
			{
				StationID: "ST1", Latitude: 45, Longitude: -93, Country: "USA",
				Year: 2000, Month: 1, TempC: -5.2,
				Season: climate.SeasonWinter, Region: climate.RegionNorthern, Decade: 2000,
			},
		},
	}
}

func TestResultStoreEmpty(t *testing.T) {
	s := NewResultStore(t.TempDir())
	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.LoadFromDisk(), ErrNotFound)
}

func TestResultStoreSaveAndLatest(t *testing.T) {
	dir := t.TempDir()
	s := NewResultStore(dir)

	require.NoError(t, s.Save(sampleResults()))

	got, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, "test-run", got.RunID)
	assert.Len(t, got.AnnualGlobal, 2)

	// Every table must exist on disk after a save.
	for _, name := range []string{
		AnnualGlobalFile, AnnualRegionalFile, SeasonalFile,
		DecadalFile, DecadalChangeFile, ExtremeCountsFile, ProcessedDataFile,
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

// A fresh store pointed at a previous run's directory must serve the same
// tables after LoadFromDisk.
func TestResultStoreReload(t *testing.T) {
	dir := t.TempDir()
	res := sampleResults()
	require.NoError(t, NewResultStore(dir).Save(res))

	s := NewResultStore(dir)
	require.NoError(t, s.LoadFromDisk())

	got, err := s.Latest()
	require.NoError(t, err)

	assert.Equal(t, res.AnnualGlobal, got.AnnualGlobal)
	assert.Equal(t, res.Seasonal, got.Seasonal)
	assert.Equal(t, res.Decadal, got.Decadal)
	assert.Equal(t, res.DecadalChanges, got.DecadalChanges)
	assert.Equal(t, res.ExtremeCounts, got.ExtremeCounts)
	assert.Equal(t, res.Observations, got.Observations)

	require.Len(t, got.AnnualRegional, 2)
	require.NotNil(t, got.AnnualRegional[0].Anomaly)
	assert.InDelta(t, 0.5, *got.AnnualRegional[0].Anomaly, 1e-9)
	assert.Nil(t, got.AnnualRegional[1].Anomaly, "empty baseline survives the round trip as nil")
}

// A persisted table with a truncated row must surface as an error, not a
// panic, so the server can fall back to a fresh analysis run.
func TestResultStoreReloadTruncatedRow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewResultStore(dir).Save(sampleResults()))

	path := filepath.Join(dir, AnnualGlobalFile)
	require.NoError(t, os.WriteFile(path, []byte("year,temperature_c,temp_anomaly\n2000\n"), 0o644))

	s := NewResultStore(dir)
	err := s.LoadFromDisk()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, AnnualGlobalFile)

	_, err = s.Latest()
	assert.ErrorIs(t, err, ErrNotFound, "a failed reload leaves the store empty")
}

func TestResultStoreOverwrite(t *testing.T) {
	dir := t.TempDir()
	s := NewResultStore(dir)

	first := sampleResults()
	require.NoError(t, s.Save(first))

	second := sampleResults()
	second.RunID = "second-run"
	second.AnnualGlobal = second.AnnualGlobal[:1]
	require.NoError(t, s.Save(second))

	got, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, "second-run", got.RunID)
	assert.Len(t, got.AnnualGlobal, 1)
}
