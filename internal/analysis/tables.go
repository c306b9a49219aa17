package analysis

import (
	"time"

	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
)

// AnnualGlobalRow is the global mean temperature for one year. The anomaly
// is relative to the mean of the annual series itself.
type AnnualGlobalRow struct {
	Year    int     `json:"year"`
	TempC   float64 `json:"temperature_c"`
	Anomaly float64 `json:"temp_anomaly"`
}

// AnnualRegionalRow is the mean temperature for one (year, region) cell.
// Baseline and Anomaly are nil when the region has no data inside the
// baseline window.
type AnnualRegionalRow struct {
	Year     int            `json:"year"`
	Region   climate.Region `json:"region"`
	TempC    float64        `json:"temperature_c"`
	Baseline *float64       `json:"baseline_temp"`
	Anomaly  *float64       `json:"temp_anomaly"`
}

// SeasonalRow is the mean temperature for one (year, season) cell.
type SeasonalRow struct {
	Year   int            `json:"year"`
	Season climate.Season `json:"season"`
	TempC  float64        `json:"temperature_c"`
}

// DecadalRow is the mean temperature for one (decade, region) cell.
type DecadalRow struct {
	Decade int            `json:"decade"`
	Region climate.Region `json:"region"`
	TempC  float64        `json:"temperature_c"`
}

// DecadalChangeRow is the temperature delta between a decade and the
// previous decade with data for the same region.
type DecadalChangeRow struct {
	Decade int            `json:"decade"`
	Region climate.Region `json:"region"`
	Change float64        `json:"temp_change"`
}

// ExtremeCountRow counts extreme readings per (decade, region).
type ExtremeCountRow struct {
	Decade int            `json:"decade"`
	Region climate.Region `json:"region"`
	Hot    int            `json:"extreme_hot"`
	Cold   int            `json:"extreme_cold"`
}

// Results holds every derived table from one pipeline run plus the
// processed observations they were computed from.
type Results struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	AnnualGlobal   []AnnualGlobalRow   `json:"annual_global_avg"`
	AnnualRegional []AnnualRegionalRow `json:"annual_regional_avg"`
	Seasonal       []SeasonalRow       `json:"seasonal_avg"`
	Decadal        []DecadalRow        `json:"decadal_avg"`
	DecadalChanges []DecadalChangeRow  `json:"decadal_change"`
	ExtremeCounts  []ExtremeCountRow   `json:"extreme_counts"`

	Observations []climate.Observation `json:"-"`
}
