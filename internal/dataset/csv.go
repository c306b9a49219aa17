package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
)

// File names used for the raw input tables, matching the dataset layout
// the analysis results reference.
const (
	StationMetadataFile = "station_metadata.csv"
	TemperatureDataFile = "temperature_data.csv"
)

// ReadStations parses a station metadata CSV
// (station_id,latitude,longitude,elevation,name,country).
func ReadStations(r io.Reader) ([]climate.Station, error) {
	rows, err := readAll(r, 6)
	if err != nil {
		return nil, fmt.Errorf("station metadata: %w", err)
	}

	stations := make([]climate.Station, 0, len(rows))
	for i, row := range rows {
		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("station metadata row %d: bad latitude %q", i+1, row[1])
		}
		lon, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("station metadata row %d: bad longitude %q", i+1, row[2])
		}
		elev, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("station metadata row %d: bad elevation %q", i+1, row[3])
		}
		stations = append(stations, climate.Station{
			ID:        row[0],
			Latitude:  lat,
			Longitude: lon,
			Elevation: elev,
			Name:      row[4],
			Country:   row[5],
		})
	}
	return stations, nil
}

// WriteStations writes the station metadata CSV.
func WriteStations(w io.Writer, stations []climate.Station) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"station_id", "latitude", "longitude", "elevation", "name", "country"}); err != nil {
		return err
	}
	for _, st := range stations {
		row := []string{
			st.ID,
			strconv.FormatFloat(st.Latitude, 'f', -1, 64),
			strconv.FormatFloat(st.Longitude, 'f', -1, 64),
			strconv.FormatFloat(st.Elevation, 'f', -1, 64),
			st.Name,
			st.Country,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecords parses a temperature record CSV
// (station_id,year,month,temperature), temperature in tenths of degC.
func ReadRecords(r io.Reader) ([]climate.Record, error) {
	rows, err := readAll(r, 4)
	if err != nil {
		return nil, fmt.Errorf("temperature data: %w", err)
	}

	records := make([]climate.Record, 0, len(rows))
	for i, row := range rows {
		year, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("temperature data row %d: bad year %q", i+1, row[1])
		}
		month, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("temperature data row %d: bad month %q", i+1, row[2])
		}
		tenths, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("temperature data row %d: bad temperature %q", i+1, row[3])
		}
		records = append(records, climate.Record{
			StationID:  row[0],
			Year:       year,
			Month:      month,
			TempTenths: tenths,
		})
	}
	return records, nil
}

// WriteRecords writes the temperature record CSV.
func WriteRecords(w io.Writer, records []climate.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"station_id", "year", "month", "temperature"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.StationID,
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.Month),
			strconv.Itoa(rec.TempTenths),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteObservations writes the combined processed-data table.
func WriteObservations(w io.Writer, obs []climate.Observation) error {
	cw := csv.NewWriter(w)
	header := []string{
		"station_id", "latitude", "longitude", "country",
		"year", "month", "temperature_c", "season", "region", "decade",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, o := range obs {
		row := []string{
			o.StationID,
			strconv.FormatFloat(o.Latitude, 'f', -1, 64),
			strconv.FormatFloat(o.Longitude, 'f', -1, 64),
			o.Country,
			strconv.Itoa(o.Year),
			strconv.Itoa(o.Month),
			strconv.FormatFloat(o.TempC, 'f', -1, 64),
			string(o.Season),
			string(o.Region),
			strconv.Itoa(o.Decade),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveDataset writes the two raw input tables to dir.
func SaveDataset(dir string, ds Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, StationMetadataFile), func(w io.Writer) error {
		return WriteStations(w, ds.Stations)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, TemperatureDataFile), func(w io.Writer) error {
		return WriteRecords(w, ds.Records)
	})
}

// LoadDataset reads the two raw input tables from dir.
func LoadDataset(dir string) (Dataset, error) {
	var ds Dataset

	f, err := os.Open(filepath.Join(dir, StationMetadataFile))
	if err != nil {
		return ds, err
	}
	ds.Stations, err = ReadStations(f)
	f.Close()
	if err != nil {
		return ds, err
	}

	f, err = os.Open(filepath.Join(dir, TemperatureDataFile))
	if err != nil {
		return ds, err
	}
	ds.Records, err = ReadRecords(f)
	f.Close()
	return ds, err
}

// readAll reads every data row, skipping the header, and enforces a
// minimum column count.
func readAll(r io.Reader, minCols int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	all, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	rows := all[1:] // header
	for i, row := range rows {
		if len(row) < minCols {
			return nil, fmt.Errorf("row %d: want at least %d columns, got %d", i+1, minCols, len(row))
		}
	}
	return rows, nil
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
