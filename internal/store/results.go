package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BenjiCoder24/climate-anlysis/internal/analysis"
	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
	"github.com/BenjiCoder24/climate-anlysis/internal/dataset"
)

// ErrNotFound is returned when no analysis results are available yet.
var ErrNotFound = errors.New("no analysis results available")

// Result table file names. The latest run overwrites the previous one.
const (
	AnnualGlobalFile   = "annual_global_avg.csv"
	AnnualRegionalFile = "annual_regional_avg.csv"
	SeasonalFile       = "seasonal_avg.csv"
	DecadalFile        = "decadal_avg.csv"
	DecadalChangeFile  = "decadal_change.csv"
	ExtremeCountsFile  = "extreme_counts.csv"
	ProcessedDataFile  = "processed_data.csv"
)

// ResultStore keeps the latest analysis results in memory for serving and
// mirrors them to CSV files so a restarted server can come back up without
// recomputing.
type ResultStore struct {
	mu     sync.RWMutex
	dir    string
	latest *analysis.Results
}

func NewResultStore(dir string) *ResultStore {
	return &ResultStore{dir: dir}
}

// Save writes all result tables to the results directory and swaps the
// in-memory copy. The on-disk write happens first so readers never observe
// tables that were not persisted.
func (s *ResultStore) Save(res analysis.Results) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	writers := map[string]func(io.Writer) error{
		AnnualGlobalFile:   func(w io.Writer) error { return writeAnnualGlobal(w, res.AnnualGlobal) },
		AnnualRegionalFile: func(w io.Writer) error { return writeAnnualRegional(w, res.AnnualRegional) },
		SeasonalFile:       func(w io.Writer) error { return writeSeasonal(w, res.Seasonal) },
		DecadalFile:        func(w io.Writer) error { return writeDecadal(w, res.Decadal) },
		DecadalChangeFile:  func(w io.Writer) error { return writeDecadalChanges(w, res.DecadalChanges) },
		ExtremeCountsFile:  func(w io.Writer) error { return writeExtremeCounts(w, res.ExtremeCounts) },
		ProcessedDataFile:  func(w io.Writer) error { return dataset.WriteObservations(w, res.Observations) },
	}
	for name, write := range writers {
		if err := writeFile(filepath.Join(s.dir, name), write); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	s.mu.Lock()
	s.latest = &res
	s.mu.Unlock()
	return nil
}

// Latest returns the most recent results.
func (s *ResultStore) Latest() (analysis.Results, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return analysis.Results{}, ErrNotFound
	}
	return *s.latest, nil
}

// LoadFromDisk reads previously persisted tables into memory. It returns
// ErrNotFound when the results directory has no complete set of tables.
func (s *ResultStore) LoadFromDisk() error {
	var res analysis.Results
	var err error

	if res.AnnualGlobal, err = readTable(filepath.Join(s.dir, AnnualGlobalFile), 3, parseAnnualGlobal); err != nil {
		return err
	}
	if res.AnnualRegional, err = readTable(filepath.Join(s.dir, AnnualRegionalFile), 5, parseAnnualRegional); err != nil {
		return err
	}
	if res.Seasonal, err = readTable(filepath.Join(s.dir, SeasonalFile), 3, parseSeasonal); err != nil {
		return err
	}
	if res.Decadal, err = readTable(filepath.Join(s.dir, DecadalFile), 3, parseDecadal); err != nil {
		return err
	}
	if res.DecadalChanges, err = readTable(filepath.Join(s.dir, DecadalChangeFile), 3, parseDecadalChange); err != nil {
		return err
	}
	if res.ExtremeCounts, err = readTable(filepath.Join(s.dir, ExtremeCountsFile), 4, parseExtremeCount); err != nil {
		return err
	}
	if res.Observations, err = readTable(filepath.Join(s.dir, ProcessedDataFile), 10, parseObservation); err != nil {
		return err
	}

	s.mu.Lock()
	s.latest = &res
	s.mu.Unlock()
	return nil
}

func writeAnnualGlobal(w io.Writer, rows []analysis.AnnualGlobalRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "temperature_c", "temp_anomaly"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.Itoa(r.Year), ffmt(r.TempC), ffmt(r.Anomaly),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeAnnualRegional(w io.Writer, rows []analysis.AnnualRegionalRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "region", "temperature_c", "baseline_temp", "temp_anomaly"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.Itoa(r.Year), string(r.Region), ffmt(r.TempC), pfmt(r.Baseline), pfmt(r.Anomaly),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSeasonal(w io.Writer, rows []analysis.SeasonalRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "season", "temperature_c"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{strconv.Itoa(r.Year), string(r.Season), ffmt(r.TempC)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeDecadal(w io.Writer, rows []analysis.DecadalRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"decade", "region", "temperature_c"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{strconv.Itoa(r.Decade), string(r.Region), ffmt(r.TempC)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeDecadalChanges(w io.Writer, rows []analysis.DecadalChangeRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"decade", "region", "temp_change"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{strconv.Itoa(r.Decade), string(r.Region), ffmt(r.Change)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeExtremeCounts(w io.Writer, rows []analysis.ExtremeCountRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"decade", "region", "extreme_hot", "extreme_cold"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.Itoa(r.Decade), string(r.Region), strconv.Itoa(r.Hot), strconv.Itoa(r.Cold),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseAnnualGlobal(row []string) (analysis.AnnualGlobalRow, error) {
	var r analysis.AnnualGlobalRow
	var err error
	if r.Year, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}
	if r.TempC, err = strconv.ParseFloat(row[1], 64); err != nil {
		return r, err
	}
	r.Anomaly, err = strconv.ParseFloat(row[2], 64)
	return r, err
}

func parseAnnualRegional(row []string) (analysis.AnnualRegionalRow, error) {
	var r analysis.AnnualRegionalRow
	var err error
	if r.Year, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}
	r.Region = climate.Region(row[1])
	if r.TempC, err = strconv.ParseFloat(row[2], 64); err != nil {
		return r, err
	}
	if r.Baseline, err = pparse(row[3]); err != nil {
		return r, err
	}
	r.Anomaly, err = pparse(row[4])
	return r, err
}

func parseSeasonal(row []string) (analysis.SeasonalRow, error) {
	var r analysis.SeasonalRow
	var err error
	if r.Year, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}
	r.Season = climate.Season(row[1])
	r.TempC, err = strconv.ParseFloat(row[2], 64)
	return r, err
}

func parseDecadal(row []string) (analysis.DecadalRow, error) {
	var r analysis.DecadalRow
	var err error
	if r.Decade, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}
	r.Region = climate.Region(row[1])
	r.TempC, err = strconv.ParseFloat(row[2], 64)
	return r, err
}

func parseDecadalChange(row []string) (analysis.DecadalChangeRow, error) {
	var r analysis.DecadalChangeRow
	var err error
	if r.Decade, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}
	r.Region = climate.Region(row[1])
	r.Change, err = strconv.ParseFloat(row[2], 64)
	return r, err
}

func parseExtremeCount(row []string) (analysis.ExtremeCountRow, error) {
	var r analysis.ExtremeCountRow
	var err error
	if r.Decade, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}
	r.Region = climate.Region(row[1])
	if r.Hot, err = strconv.Atoi(row[2]); err != nil {
		return r, err
	}
	r.Cold, err = strconv.Atoi(row[3])
	return r, err
}

func parseObservation(row []string) (climate.Observation, error) {
	var o climate.Observation
	var err error
	o.StationID = row[0]
	if o.Latitude, err = strconv.ParseFloat(row[1], 64); err != nil {
		return o, err
	}
	if o.Longitude, err = strconv.ParseFloat(row[2], 64); err != nil {
		return o, err
	}
	o.Country = row[3]
	if o.Year, err = strconv.Atoi(row[4]); err != nil {
		return o, err
	}
	if o.Month, err = strconv.Atoi(row[5]); err != nil {
		return o, err
	}
	if o.TempC, err = strconv.ParseFloat(row[6], 64); err != nil {
		return o, err
	}
	o.Season = climate.Season(row[7])
	o.Region = climate.Region(row[8])
	o.Decade, err = strconv.Atoi(row[9])
	return o, err
}

// readTable reads a CSV file, skipping the header, and parses every row.
// The parsers index columns directly, so rows shorter than cols are
// rejected here. A missing file maps to ErrNotFound.
func readTable[T any](path string, cols int, parse func([]string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s missing", ErrNotFound, filepath.Base(path))
		}
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(all) == 0 {
		return nil, nil
	}

	rows := make([]T, 0, len(all)-1)
	for i, raw := range all[1:] {
		if len(raw) < cols {
			return nil, fmt.Errorf("%s row %d: want %d columns, got %d", filepath.Base(path), i+1, cols, len(raw))
		}
		row, err := parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filepath.Base(path), i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func ffmt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pfmt(v *float64) string {
	if v == nil {
		return ""
	}
	return ffmt(*v)
}

func pparse(s string) (*float64, error) {
	if s == "" || s == "NaN" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
