package analysis

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
	"github.com/BenjiCoder24/climate-anlysis/internal/dataset"
	"github.com/BenjiCoder24/climate-anlysis/internal/observability"
)

// Params are the tunable knobs of a pipeline run.
type Params struct {
	BaselineStart int
	BaselineEnd   int
	ExtremeSigma  float64
}

// DataLoader resolves the observation table, falling back to synthetic
// data internally.
type DataLoader interface {
	Load(ctx context.Context) (dataset.Dataset, []climate.Observation, bool)
}

// ResultWriter persists a complete set of result tables.
type ResultWriter interface {
	Save(res Results) error
}

// Service orchestrates one load-aggregate-persist cycle.
type Service struct {
	loader  DataLoader
	writer  ResultWriter
	params  Params
	metrics *observability.Metrics
}

func NewService(loader DataLoader, writer ResultWriter, params Params, metrics *observability.Metrics) *Service {
	return &Service{
		loader:  loader,
		writer:  writer,
		params:  params,
		metrics: metrics,
	}
}

// Run executes the full pipeline and returns the computed tables. The
// aggregations are pure; rerunning on the same input yields identical
// results.
func (s *Service) Run(ctx context.Context) (Results, error) {
	runID := uuid.NewString()
	start := time.Now()
	log.Printf("INFO: analysis run %s started", runID)

	_, obs, remote := s.loader.Load(ctx)
	source := "synthetic"
	if remote {
		source = "remote"
	}

	res := Compute(obs, s.params)
	res.RunID = runID
	res.GeneratedAt = time.Now().UTC()

	if err := s.writer.Save(res); err != nil {
		s.metrics.AnalysisRuns.WithLabelValues(source, "error").Inc()
		return Results{}, err
	}

	s.metrics.AnalysisRuns.WithLabelValues(source, "success").Inc()
	s.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	s.metrics.ObservationRows.Set(float64(len(obs)))
	s.metrics.LastRunTimestamp.Set(float64(res.GeneratedAt.Unix()))

	log.Printf("INFO: analysis run %s finished: %d observations, source=%s, took %s",
		runID, len(obs), source, time.Since(start).Round(time.Millisecond))
	return res, nil
}

// Compute derives every result table from the observation slice.
func Compute(obs []climate.Observation, params Params) Results {
	decadal := Decadal(obs)
	return Results{
		AnnualGlobal:   AnnualGlobal(obs),
		AnnualRegional: AnnualRegional(obs, params.BaselineStart, params.BaselineEnd),
		Seasonal:       Seasonal(obs),
		Decadal:        decadal,
		DecadalChanges: DecadalChanges(decadal),
		ExtremeCounts:  ExtremeCounts(obs, params.ExtremeSigma),
		Observations:   obs,
	}
}
