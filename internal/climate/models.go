package climate

import (
	"fmt"
	"time"
)

// Region is a fixed latitude band. Every station belongs to exactly one band.
type Region string

const (
	RegionAntarctica Region = "Antarctica"
	RegionSouthern   Region = "Southern"
	RegionTropicalS  Region = "Tropical S"
	RegionTropicalN  Region = "Tropical N"
	RegionNorthern   Region = "Northern"
	RegionArctic     Region = "Arctic"
)

// Regions lists all latitude bands from south to north.
var Regions = []Region{
	RegionAntarctica,
	RegionSouthern,
	RegionTropicalS,
	RegionTropicalN,
	RegionNorthern,
	RegionArctic,
}

// RegionForLatitude maps a latitude in [-90, 90] to its band.
// Band edges are half-open on the left and closed on the right,
// with -90 folded into Antarctica so the partition is exhaustive.
func RegionForLatitude(lat float64) Region {
	switch {
	case lat <= -60:
		return RegionAntarctica
	case lat <= -30:
		return RegionSouthern
	case lat <= 0:
		return RegionTropicalS
	case lat <= 30:
		return RegionTropicalN
	case lat <= 60:
		return RegionNorthern
	default:
		return RegionArctic
	}
}

// Season is a meteorological season.
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// Seasons lists the seasons in calendar order starting with Winter.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

// SeasonForMonth maps a calendar month to its meteorological season
// (Dec-Feb: Winter, Mar-May: Spring, Jun-Aug: Summer, Sep-Nov: Fall).
func SeasonForMonth(month int) (Season, error) {
	switch month {
	case 12, 1, 2:
		return SeasonWinter, nil
	case 3, 4, 5:
		return SeasonSpring, nil
	case 6, 7, 8:
		return SeasonSummer, nil
	case 9, 10, 11:
		return SeasonFall, nil
	default:
		return "", fmt.Errorf("invalid month: %d", month)
	}
}

// Station describes a measurement site.
type Station struct {
	ID        string  `json:"station_id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
	Country   string  `json:"country"`
}

// Record is one raw station-month temperature reading.
// Temperature is stored in tenths of a degree Celsius, GHCN style.
type Record struct {
	StationID  string `json:"station_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	TempTenths int    `json:"temperature"`
}

// Observation is a preprocessed reading with station metadata and the
// derived fields attached. Immutable once built.
type Observation struct {
	StationID string  `json:"station_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	TempC     float64 `json:"temperature_c"`
	Season    Season  `json:"season"`
	Region    Region  `json:"region"`
	Decade    int     `json:"decade"`
}

// Date returns the first day of the observation month in UTC.
func (o Observation) Date() time.Time {
	return time.Date(o.Year, time.Month(o.Month), 1, 0, 0, 0, 0, time.UTC)
}

// DecadeOf truncates a year to its decade (1967 -> 1960).
func DecadeOf(year int) int {
	return (year / 10) * 10
}
