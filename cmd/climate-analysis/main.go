package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/BenjiCoder24/climate-anlysis/internal/analysis"
	"github.com/BenjiCoder24/climate-anlysis/internal/config"
	"github.com/BenjiCoder24/climate-anlysis/internal/dataset"
	"github.com/BenjiCoder24/climate-anlysis/internal/observability"
	"github.com/BenjiCoder24/climate-anlysis/internal/store"
)

// Batch entry point: run the pipeline once and write the result tables.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	fetcher := dataset.NewFetcher(httpClient, cfg.StationMetadataURL, cfg.TemperatureDataURL)
	loader := dataset.NewLoader(fetcher, dataset.SyntheticConfig{
		Stations:  cfg.StationCount,
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
		Seed:      cfg.SyntheticSeed,
	})

	service := analysis.NewService(loader, store.NewResultStore(cfg.ResultsDir), analysis.Params{
		BaselineStart: cfg.BaselineStart,
		BaselineEnd:   cfg.BaselineEnd,
		ExtremeSigma:  cfg.ExtremeSigma,
	}, observability.NewMetrics())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := service.Run(ctx)
	if err != nil {
		log.Fatalf("analysis run failed: %v", err)
	}

	log.Printf("INFO: wrote %d annual, %d regional, %d seasonal, %d decadal rows to %s",
		len(res.AnnualGlobal), len(res.AnnualRegional), len(res.Seasonal), len(res.Decadal), cfg.ResultsDir)
}
