package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port       string
	DataDir    string
	ResultsDir string
	StaticDir  string

	// Remote dataset endpoints. Empty values disable the download and go
	// straight to the synthetic generator.
	StationMetadataURL string
	TemperatureDataURL string
	HTTPTimeout        time.Duration

	// Analysis window and anomaly baseline.
	StartYear     int
	EndYear       int
	BaselineStart int
	BaselineEnd   int

	// ExtremeSigma is the number of station standard deviations beyond
	// which a reading counts as an extreme event.
	ExtremeSigma float64

	// Synthetic dataset shape.
	StationCount  int
	SyntheticSeed int64

	// RefreshInterval controls how often the analysis pipeline reruns.
	RefreshInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:       getenvDefault("PORT", "8080"),
		DataDir:    getenvDefault("DATA_DIR", "data"),
		ResultsDir: getenvDefault("RESULTS_DIR", "results"),
		StaticDir:  getenvDefault("STATIC_DIR", "static"),

		StationMetadataURL: os.Getenv("STATION_METADATA_URL"),
		TemperatureDataURL: os.Getenv("TEMPERATURE_DATA_URL"),

		StartYear:     getenvInt("START_YEAR", 1960),
		EndYear:       getenvInt("END_YEAR", 2020),
		BaselineStart: getenvInt("BASELINE_START", 1961),
		BaselineEnd:   getenvInt("BASELINE_END", 1990),

		ExtremeSigma: getenvFloat("EXTREME_SIGMA", 2.0),

		StationCount:  getenvInt("STATION_COUNT", 100),
		SyntheticSeed: int64(getenvInt("SYNTHETIC_SEED", 42)),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Refresh interval: default 24 hours, the dataset is historical.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "24h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	if cfg.StartYear > cfg.EndYear {
		return nil, fmt.Errorf("START_YEAR %d is after END_YEAR %d", cfg.StartYear, cfg.EndYear)
	}
	if cfg.BaselineStart > cfg.BaselineEnd {
		return nil, fmt.Errorf("BASELINE_START %d is after BASELINE_END %d", cfg.BaselineStart, cfg.BaselineEnd)
	}
	if cfg.ExtremeSigma <= 0 {
		return nil, fmt.Errorf("EXTREME_SIGMA must be positive, got %v", cfg.ExtremeSigma)
	}
	if cfg.StationCount <= 0 {
		return nil, fmt.Errorf("STATION_COUNT must be positive, got %d", cfg.StationCount)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
