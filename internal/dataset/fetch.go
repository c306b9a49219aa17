package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnavailable signals that the remote dataset could not be fetched and
// the caller should fall back to synthetic data.
var ErrUnavailable = errors.New("dataset source unavailable")

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// Fetcher downloads the raw station and temperature tables over HTTP with
// retries, exponential backoff, and a circuit breaker.
type Fetcher struct {
	client      *http.Client
	stationsURL string
	recordsURL  string
	backoff     BackoffConfig
	circuit     *gobreaker.CircuitBreaker
}

func NewFetcher(client *http.Client, stationsURL, recordsURL string) *Fetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dataset-download",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Fetcher{
		client:      client,
		stationsURL: stationsURL,
		recordsURL:  recordsURL,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// Fetch downloads and parses both tables. It never returns partial data:
// any network or parse failure yields an error wrapping ErrUnavailable.
func (f *Fetcher) Fetch(ctx context.Context) (Dataset, error) {
	var ds Dataset

	if f.stationsURL == "" || f.recordsURL == "" {
		return ds, fmt.Errorf("%w: no source URLs configured", ErrUnavailable)
	}

	resp, err := f.get(ctx, f.stationsURL)
	if err != nil {
		return ds, fmt.Errorf("%w: stations: %v", ErrUnavailable, err)
	}
	stations, err := ReadStations(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ds, fmt.Errorf("%w: stations: %v", ErrUnavailable, err)
	}

	resp, err = f.get(ctx, f.recordsURL)
	if err != nil {
		return ds, fmt.Errorf("%w: records: %v", ErrUnavailable, err)
	}
	records, err := ReadRecords(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ds, fmt.Errorf("%w: records: %v", ErrUnavailable, err)
	}

	if len(stations) == 0 || len(records) == 0 {
		return ds, fmt.Errorf("%w: remote dataset is empty", ErrUnavailable)
	}

	ds.Stations = stations
	ds.Records = records
	return ds, nil
}

// get executes the request with retries, exponential backoff, and the
// circuit breaker.
func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		result, err := f.circuit.Execute(func() (interface{}, error) {
			resp, execErr := f.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// If the circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= f.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := f.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if f.backoff.MaxInterval > 0 && delay > f.backoff.MaxInterval {
			delay = f.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
