package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenjiCoder24/climate-anlysis/internal/analysis"
	"github.com/BenjiCoder24/climate-anlysis/internal/charts"
	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
	"github.com/BenjiCoder24/climate-anlysis/internal/observability"
	"github.com/BenjiCoder24/climate-anlysis/internal/store"
)

func testResults() analysis.Results {
	return analysis.Results{
		RunID: "test-run",
		AnnualGlobal: []analysis.AnnualGlobalRow{
			{Year: 1999, TempC: 13.9, Anomaly: -0.3},
			{Year: 2000, TempC: 14.1, Anomaly: -0.1},
			{Year: 2001, TempC: 14.3, Anomaly: 0.1},
			{Year: 2002, TempC: 14.5, Anomaly: 0.3},
		},
		Decadal: []analysis.DecadalRow{
			{Decade: 1990, Region: climate.RegionNorthern, TempC: 11.9},
			{Decade: 2000, Region: climate.RegionNorthern, TempC: 12.2},
		},
	}
}

func newTestApp(t *testing.T, withResults bool) *fiber.App {
	t.Helper()

	results := store.NewResultStore(t.TempDir())
	if withResults {
		require.NoError(t, results.Save(testResults()))
	}

	app := fiber.New()
	RegisterRoutes(app, results, observability.NewMetricsForTesting())
	return app
}

func doRequest(t *testing.T, app *fiber.App, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestPlotList(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doRequest(t, app, "/api/plots")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Plots []string `json:"plots"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Plots, 11)
	assert.Contains(t, payload.Plots, charts.GlobalTemperatureTrend)
}

func TestPlotEndpoint(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doRequest(t, app, "/api/plots/"+charts.GlobalTemperatureTrend)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var spec struct {
		Data   []json.RawMessage `json:"data"`
		Layout json.RawMessage   `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(body, &spec))
	assert.Len(t, spec.Data, 3, "temperature, anomaly, and trend traces")
}

func TestPlotUnknownName(t *testing.T) {
	// An unknown name is 404 whether or not results exist yet.
	for _, withResults := range []bool{true, false} {
		app := newTestApp(t, withResults)

		resp, _ := doRequest(t, app, "/api/plots/no-such-plot")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

// Before the first analysis run the plot endpoints serve an empty figure so
// the dashboard can still render.
func TestPlotEmptyStore(t *testing.T) {
	app := newTestApp(t, false)

	resp, body := doRequest(t, app, "/api/plots/"+charts.GlobalTemperatureTrend)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var spec struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &spec))
	assert.Empty(t, spec.Data)
}

func TestTableYearFilter(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doRequest(t, app, "/api/tables/annual-global?from=2000&to=2001")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Table string                     `json:"table"`
		Rows  []analysis.AnnualGlobalRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, TableAnnualGlobal, payload.Table)
	require.Len(t, payload.Rows, 2)
	assert.Equal(t, 2000, payload.Rows[0].Year)
	assert.Equal(t, 2001, payload.Rows[1].Year)
}

func TestTableDecadeFilter(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doRequest(t, app, "/api/tables/decadal?from=2000")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Rows []analysis.DecadalRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Rows, 1)
	assert.Equal(t, 2000, payload.Rows[0].Decade)
}

func TestTableValidation(t *testing.T) {
	app := newTestApp(t, true)

	for _, url := range []string{
		"/api/tables/annual-global?from=abc",
		"/api/tables/annual-global?from=2010&to=2000",
		"/api/tables/annual-global?from=17",
	} {
		resp, _ := doRequest(t, app, url)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, url)
	}
}

func TestTableUnknownName(t *testing.T) {
	app := newTestApp(t, true)

	resp, _ := doRequest(t, app, "/api/tables/no-such-table")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTableEmptyStore(t *testing.T) {
	app := newTestApp(t, false)

	resp, _ := doRequest(t, app, "/api/tables/annual-global")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
