package dataset

import (
	"context"
	"log"

	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
)

// Source produces a raw dataset.
type Source interface {
	Fetch(ctx context.Context) (Dataset, error)
}

// Loader resolves the raw dataset: it tries the remote source once and
// falls back to the synthetic generator on any failure. The fallback fully
// recovers the error, so Load never fails.
type Loader struct {
	source    Source
	synthetic SyntheticConfig
}

func NewLoader(source Source, synthetic SyntheticConfig) *Loader {
	return &Loader{source: source, synthetic: synthetic}
}

// Load returns preprocessed observations ready for aggregation, the raw
// dataset they were derived from, and whether the data came from the remote
// source (false means the synthetic fallback was used).
func (l *Loader) Load(ctx context.Context) (Dataset, []climate.Observation, bool) {
	ds, err := l.source.Fetch(ctx)
	if err != nil {
		log.Printf("INFO: dataset download failed (%v); generating synthetic data", err)
		ds = Synthetic(l.synthetic)
		return ds, Preprocess(ds), false
	}
	log.Printf("INFO: downloaded dataset with %d stations and %d records", len(ds.Stations), len(ds.Records))
	return ds, Preprocess(ds), true
}
