package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stationsCSV = "station_id,latitude,longitude,elevation,name,country\n" +
		"ST1,45.0,-93.2,250,Test One,USA\n" +
		"ST2,-12.5,130.8,30,Test Two,AUS\n"
	recordsCSV = "station_id,year,month,temperature\n" +
		"ST1,2000,1,-52\n" +
		"ST2,2000,1,305\n"
)

func newFetcherFor(srv *httptest.Server) *Fetcher {
	f := NewFetcher(srv.Client(), srv.URL+"/stations.csv", srv.URL+"/records.csv")
	// Keep retries fast in tests.
	f.backoff = BackoffConfig{MaxRetries: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}
	return f
}

func TestFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "stations.csv"):
			w.Write([]byte(stationsCSV))
		case strings.HasSuffix(r.URL.Path, "records.csv"):
			w.Write([]byte(recordsCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ds, err := newFetcherFor(srv).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Stations, 2)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "ST1", ds.Stations[0].ID)
	assert.Equal(t, 305, ds.Records[1].TempTenths)
}

func TestFetcherServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newFetcherFor(srv).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetcherMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("station_id,latitude\nonly,two-cols\n"))
	}))
	defer srv.Close()

	_, err := newFetcherFor(srv).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetcherNoURLs(t *testing.T) {
	f := NewFetcher(http.DefaultClient, "", "")
	_, err := f.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

// A failing source must be fully recovered by the synthetic fallback.
func TestLoaderFallsBackToSynthetic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	loader := NewLoader(newFetcherFor(srv), SyntheticConfig{
		Stations: 4, StartYear: 1980, EndYear: 1981, Seed: 3,
	})

	ds, obs, remote := loader.Load(context.Background())
	assert.False(t, remote)
	assert.Len(t, ds.Stations, 4)
	assert.Len(t, obs, 4*2*12)
}
