package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/BenjiCoder24/climate-anlysis/internal/analysis"
	"github.com/BenjiCoder24/climate-anlysis/internal/charts"
	"github.com/BenjiCoder24/climate-anlysis/internal/observability"
	"github.com/BenjiCoder24/climate-anlysis/internal/store"
)

var validate = validator.New()

// Table names exposed under /api/tables.
const (
	TableAnnualGlobal   = "annual-global"
	TableAnnualRegional = "annual-regional"
	TableSeasonal       = "seasonal"
	TableDecadal        = "decadal"
	TableDecadalChanges = "decadal-changes"
	TableExtremeCounts  = "extreme-counts"
)

// RegisterRoutes wires the chart and table handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, results *store.ResultStore, metrics *observability.Metrics) {
	api := app.Group("/api")

	api.Get("/plots", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"plots": charts.Names()})
	})

	api.Get("/plots/:name", func(c *fiber.Ctx) error {
		name := c.Params("name")

		if !charts.Known(name) {
			metrics.ChartRequests.WithLabelValues(name, "error").Inc()
			return fiber.NewError(fiber.StatusNotFound, "unknown plot: "+name)
		}

		res, err := results.Latest()
		if err != nil {
			metrics.ChartRequests.WithLabelValues(name, "error").Inc()
			if errors.Is(err, store.ErrNotFound) {
				// The dashboard renders an empty plot rather than breaking.
				return c.Status(fiber.StatusServiceUnavailable).JSON(charts.Empty())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read analysis results")
		}

		spec, _ := charts.Build(name, res)
		metrics.ChartRequests.WithLabelValues(name, "success").Inc()
		return c.JSON(spec)
	})

	api.Get("/tables/:name", func(c *fiber.Ctx) error {
		name := c.Params("name")

		var q tableQuery
		if err := q.bind(c); err != nil {
			metrics.TableRequests.WithLabelValues(name, "error").Inc()
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := results.Latest()
		if err != nil {
			metrics.TableRequests.WithLabelValues(name, "error").Inc()
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "no analysis results available yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read analysis results")
		}

		rows, ok := tableRows(name, res, q)
		if !ok {
			metrics.TableRequests.WithLabelValues(name, "error").Inc()
			return fiber.NewError(fiber.StatusNotFound, "unknown table: "+name)
		}

		metrics.TableRequests.WithLabelValues(name, "success").Inc()
		return c.JSON(fiber.Map{"table": name, "rows": rows})
	})
}

// tableQuery holds the optional year range filter of the table endpoints.
// A zero bound means unbounded on that side.
type tableQuery struct {
	From int `validate:"omitempty,gte=1800,lte=2200"`
	To   int `validate:"omitempty,gte=1800,lte=2200,gtefield=From"`
}

func (q *tableQuery) bind(c *fiber.Ctx) error {
	var err error
	if s := c.Query("from"); s != "" {
		if q.From, err = strconv.Atoi(s); err != nil {
			return errors.New("from must be a year")
		}
	}
	if s := c.Query("to"); s != "" {
		if q.To, err = strconv.Atoi(s); err != nil {
			return errors.New("to must be a year")
		}
	}
	return validate.Struct(q)
}

func (q tableQuery) includes(year int) bool {
	if q.From != 0 && year < q.From {
		return false
	}
	if q.To != 0 && year > q.To {
		return false
	}
	return true
}

// tableRows selects and filters the named table. Decadal tables filter on
// the decade start year.
func tableRows(name string, res analysis.Results, q tableQuery) (any, bool) {
	switch name {
	case TableAnnualGlobal:
		return filterRows(res.AnnualGlobal, q, func(r analysis.AnnualGlobalRow) int { return r.Year }), true
	case TableAnnualRegional:
		return filterRows(res.AnnualRegional, q, func(r analysis.AnnualRegionalRow) int { return r.Year }), true
	case TableSeasonal:
		return filterRows(res.Seasonal, q, func(r analysis.SeasonalRow) int { return r.Year }), true
	case TableDecadal:
		return filterRows(res.Decadal, q, func(r analysis.DecadalRow) int { return r.Decade }), true
	case TableDecadalChanges:
		return filterRows(res.DecadalChanges, q, func(r analysis.DecadalChangeRow) int { return r.Decade }), true
	case TableExtremeCounts:
		return filterRows(res.ExtremeCounts, q, func(r analysis.ExtremeCountRow) int { return r.Decade }), true
	default:
		return nil, false
	}
}

func filterRows[T any](rows []T, q tableQuery, year func(T) int) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if q.includes(year(r)) {
			out = append(out, r)
		}
	}
	return out
}
