package analysis

import (
	"math"
	"sort"

	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
)

// The aggregations below are pure functions of the observation slice:
// no shared state, deterministic output order, safe to recompute at will.
// Empty input yields empty tables.

type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) {
	a.sum += v
	a.n++
}

func (a meanAcc) mean() float64 {
	return a.sum / float64(a.n)
}

// AnnualGlobal computes the unweighted mean temperature per year across all
// stations, with the anomaly taken against the mean of the annual series.
func AnnualGlobal(obs []climate.Observation) []AnnualGlobalRow {
	byYear := map[int]*meanAcc{}
	for _, o := range obs {
		acc, ok := byYear[o.Year]
		if !ok {
			acc = &meanAcc{}
			byYear[o.Year] = acc
		}
		acc.add(o.TempC)
	}

	years := sortedKeys(byYear)
	rows := make([]AnnualGlobalRow, 0, len(years))
	var seriesSum float64
	for _, y := range years {
		m := byYear[y].mean()
		seriesSum += m
		rows = append(rows, AnnualGlobalRow{Year: y, TempC: m})
	}
	if len(rows) == 0 {
		return rows
	}
	seriesMean := seriesSum / float64(len(rows))
	for i := range rows {
		rows[i].Anomaly = rows[i].TempC - seriesMean
	}
	return rows
}

type yearRegion struct {
	year   int
	region climate.Region
}

// AnnualRegional computes the mean temperature per (year, region) and the
// anomaly against each region's baseline: the mean of its annual means over
// [baselineStart, baselineEnd]. Regions with no data in the baseline window
// get nil baseline and anomaly.
func AnnualRegional(obs []climate.Observation, baselineStart, baselineEnd int) []AnnualRegionalRow {
	byCell := map[yearRegion]*meanAcc{}
	for _, o := range obs {
		k := yearRegion{o.Year, o.Region}
		acc, ok := byCell[k]
		if !ok {
			acc = &meanAcc{}
			byCell[k] = acc
		}
		acc.add(o.TempC)
	}

	// Baseline: mean of the annual means inside the window, per region.
	baseline := map[climate.Region]*meanAcc{}
	for k, acc := range byCell {
		if k.year < baselineStart || k.year > baselineEnd {
			continue
		}
		b, ok := baseline[k.region]
		if !ok {
			b = &meanAcc{}
			baseline[k.region] = b
		}
		b.add(acc.mean())
	}

	keys := make([]yearRegion, 0, len(byCell))
	for k := range byCell {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return regionIndex(keys[i].region) < regionIndex(keys[j].region)
	})

	rows := make([]AnnualRegionalRow, 0, len(keys))
	for _, k := range keys {
		row := AnnualRegionalRow{Year: k.year, Region: k.region, TempC: byCell[k].mean()}
		if b, ok := baseline[k.region]; ok {
			base := b.mean()
			anom := row.TempC - base
			row.Baseline = &base
			row.Anomaly = &anom
		}
		rows = append(rows, row)
	}
	return rows
}

type yearSeason struct {
	year   int
	season climate.Season
}

// Seasonal computes the mean temperature per (year, season).
func Seasonal(obs []climate.Observation) []SeasonalRow {
	byCell := map[yearSeason]*meanAcc{}
	for _, o := range obs {
		k := yearSeason{o.Year, o.Season}
		acc, ok := byCell[k]
		if !ok {
			acc = &meanAcc{}
			byCell[k] = acc
		}
		acc.add(o.TempC)
	}

	keys := make([]yearSeason, 0, len(byCell))
	for k := range byCell {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return seasonIndex(keys[i].season) < seasonIndex(keys[j].season)
	})

	rows := make([]SeasonalRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, SeasonalRow{Year: k.year, Season: k.season, TempC: byCell[k].mean()})
	}
	return rows
}

type decadeRegion struct {
	decade int
	region climate.Region
}

// Decadal computes the mean temperature per (decade, region).
func Decadal(obs []climate.Observation) []DecadalRow {
	byCell := map[decadeRegion]*meanAcc{}
	for _, o := range obs {
		k := decadeRegion{o.Decade, o.Region}
		acc, ok := byCell[k]
		if !ok {
			acc = &meanAcc{}
			byCell[k] = acc
		}
		acc.add(o.TempC)
	}

	keys := make([]decadeRegion, 0, len(byCell))
	for k := range byCell {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].decade != keys[j].decade {
			return keys[i].decade < keys[j].decade
		}
		return regionIndex(keys[i].region) < regionIndex(keys[j].region)
	})

	rows := make([]DecadalRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, DecadalRow{Decade: k.decade, Region: k.region, TempC: byCell[k].mean()})
	}
	return rows
}

// DecadalChanges derives the delta between consecutive decades per region.
// A region with n decades of data yields exactly n-1 rows.
func DecadalChanges(decadal []DecadalRow) []DecadalChangeRow {
	byRegion := map[climate.Region][]DecadalRow{}
	for _, row := range decadal {
		byRegion[row.Region] = append(byRegion[row.Region], row)
	}

	var rows []DecadalChangeRow
	for _, region := range climate.Regions {
		series := byRegion[region]
		sort.Slice(series, func(i, j int) bool { return series[i].Decade < series[j].Decade })
		for i := 1; i < len(series); i++ {
			rows = append(rows, DecadalChangeRow{
				Decade: series[i].Decade,
				Region: region,
				Change: series[i].TempC - series[i-1].TempC,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Decade != rows[j].Decade {
			return rows[i].Decade < rows[j].Decade
		}
		return regionIndex(rows[i].Region) < regionIndex(rows[j].Region)
	})
	return rows
}

// ExtremeCounts flags readings more than sigma sample standard deviations
// from their own station's long-run mean and counts them per
// (decade, region, hot/cold). Stations with fewer than two readings have
// no defined deviation and contribute nothing.
func ExtremeCounts(obs []climate.Observation, sigma float64) []ExtremeCountRow {
	type stationStat struct {
		mean float64
		std  float64
		ok   bool
	}

	byStation := map[string]*meanAcc{}
	for _, o := range obs {
		acc, ok := byStation[o.StationID]
		if !ok {
			acc = &meanAcc{}
			byStation[o.StationID] = acc
		}
		acc.add(o.TempC)
	}

	stats := make(map[string]stationStat, len(byStation))
	for id, acc := range byStation {
		stats[id] = stationStat{mean: acc.mean()}
	}
	// Second pass for the sample variance (ddof=1).
	sq := map[string]float64{}
	for _, o := range obs {
		d := o.TempC - stats[o.StationID].mean
		sq[o.StationID] += d * d
	}
	for id, acc := range byStation {
		if acc.n < 2 {
			continue
		}
		s := stats[id]
		s.std = math.Sqrt(sq[id] / float64(acc.n-1))
		s.ok = true
		stats[id] = s
	}

	type counts struct{ hot, cold int }
	byCell := map[decadeRegion]*counts{}
	for _, o := range obs {
		s := stats[o.StationID]
		if !s.ok {
			continue
		}
		k := decadeRegion{o.Decade, o.Region}
		c, ok := byCell[k]
		if !ok {
			c = &counts{}
			byCell[k] = c
		}
		switch {
		case o.TempC > s.mean+sigma*s.std:
			c.hot++
		case o.TempC < s.mean-sigma*s.std:
			c.cold++
		}
	}

	keys := make([]decadeRegion, 0, len(byCell))
	for k := range byCell {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].decade != keys[j].decade {
			return keys[i].decade < keys[j].decade
		}
		return regionIndex(keys[i].region) < regionIndex(keys[j].region)
	})

	rows := make([]ExtremeCountRow, 0, len(keys))
	for _, k := range keys {
		c := byCell[k]
		rows = append(rows, ExtremeCountRow{Decade: k.decade, Region: k.region, Hot: c.hot, Cold: c.cold})
	}
	return rows
}

func regionIndex(r climate.Region) int {
	for i, known := range climate.Regions {
		if known == r {
			return i
		}
	}
	return len(climate.Regions)
}

func seasonIndex(s climate.Season) int {
	for i, known := range climate.Seasons {
		if known == s {
			return i
		}
	}
	return len(climate.Seasons)
}

func sortedKeys(m map[int]*meanAcc) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
