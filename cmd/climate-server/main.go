package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BenjiCoder24/climate-anlysis/internal/analysis"
	httpapi "github.com/BenjiCoder24/climate-anlysis/internal/api/http"
	"github.com/BenjiCoder24/climate-anlysis/internal/config"
	"github.com/BenjiCoder24/climate-anlysis/internal/dataset"
	"github.com/BenjiCoder24/climate-anlysis/internal/observability"
	"github.com/BenjiCoder24/climate-anlysis/internal/scheduler"
	"github.com/BenjiCoder24/climate-anlysis/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	metrics := observability.NewMetrics()

	// Shared HTTP client for the dataset download.
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

	results := store.NewResultStore(cfg.ResultsDir)
	service := analysis.NewService(loader, results, analysis.Params{
		BaselineStart: cfg.BaselineStart,
		BaselineEnd:   cfg.BaselineEnd,
		ExtremeSigma:  cfg.ExtremeSigma,
	}, metrics)

	// Serve the previous run's tables while the fresh one computes.
	if err := results.LoadFromDisk(); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("failed to load persisted results: %v", err)
		}
		runCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		if _, err := service.Run(runCtx); err != nil {
			log.Fatalf("initial analysis run failed: %v", err)
		}
		cancel()
	} else {
		go func() {
			runCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if _, err := service.Run(runCtx); err != nil {
				log.Printf("background analysis refresh failed: %v", err)
			}
		}()
	}

	// Scheduler that periodically reruns the pipeline.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "climate-analysis",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "climate-analysis",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes and the dashboard page.
	httpapi.RegisterRoutes(app, results, metrics)
	app.Static("/", cfg.StaticDir)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
