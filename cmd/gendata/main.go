package main

import (
	"flag"
	"log"

	"github.com/BenjiCoder24/climate-anlysis/internal/dataset"
)

// Generates a synthetic station dataset and writes it as the two raw CSV
// tables. Useful for local development without a remote data source.
func main() {
	out := flag.String("out", "data", "output directory for the CSV files")
	stations := flag.Int("stations", 100, "number of synthetic stations")
	start := flag.Int("start", 1960, "first year of records")
	end := flag.Int("end", 2020, "last year of records (inclusive)")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	ds := dataset.Synthetic(dataset.SyntheticConfig{
		Stations:  *stations,
		StartYear: *start,
		EndYear:   *end,
		Seed:      *seed,
	})

	if err := dataset.SaveDataset(*out, ds); err != nil {
		log.Fatalf("failed to write dataset: %v", err)
	}
	log.Printf("INFO: wrote %d stations and %d records to %s", len(ds.Stations), len(ds.Records), *out)
}
