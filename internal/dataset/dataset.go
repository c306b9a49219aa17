package dataset

import (
	"log"

	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
)

// Dataset bundles the two raw input tables: station metadata and
// station-month temperature records.
type Dataset struct {
	Stations []climate.Station
	Records  []climate.Record
}

// Preprocess joins records with station metadata and derives the per-record
// fields (temperature in degrees, season, region, decade). Records that
// reference an unknown station or carry an invalid month are dropped.
func Preprocess(ds Dataset) []climate.Observation {
	byID := make(map[string]climate.Station, len(ds.Stations))
	for _, st := range ds.Stations {
		byID[st.ID] = st
	}

	obs := make([]climate.Observation, 0, len(ds.Records))
	dropped := 0
	for _, rec := range ds.Records {
		st, ok := byID[rec.StationID]
		if !ok {
			dropped++
			continue
		}
		season, err := climate.SeasonForMonth(rec.Month)
		if err != nil {
			dropped++
			continue
		}
		obs = append(obs, climate.Observation{
			StationID: rec.StationID,
			Latitude:  st.Latitude,
			Longitude: st.Longitude,
			Country:   st.Country,
			Year:      rec.Year,
			Month:     rec.Month,
			TempC:     float64(rec.TempTenths) / 10.0,
			Season:    season,
			Region:    climate.RegionForLatitude(st.Latitude),
			Decade:    climate.DecadeOf(rec.Year),
		})
	}
	if dropped > 0 {
		log.Printf("preprocess: dropped %d records with unknown stations or invalid months", dropped)
	}
	return obs
}
