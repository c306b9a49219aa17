package charts

import (
	"fmt"
	"sort"

	"github.com/BenjiCoder24/climate-anlysis/internal/analysis"
	"github.com/BenjiCoder24/climate-anlysis/internal/climate"
)

// Chart names double as API endpoint identifiers.
const (
	GlobalTemperatureTrend   = "global-temperature-trend"
	RegionalTemperatureTrend = "regional-temperature-trends"
	RegionalHeatmap          = "regional-heatmap"
	SeasonalTrends           = "seasonal-trends"
	SeasonalVariability      = "seasonal-variability"
	DecadalChanges           = "decadal-changes"
	DecadalChangesHeatmap    = "decadal-changes-heatmap"
	ExtremeHotEvents         = "extreme-hot-events"
	ExtremeColdEvents        = "extreme-cold-events"
	ExtremeRatio             = "extreme-ratio"
	GlobalMap                = "global-map"
)

// Builder derives one chart spec from the result tables.
type Builder func(analysis.Results) Spec

var builders = map[string]Builder{
	GlobalTemperatureTrend:   buildGlobalTemperatureTrend,
	RegionalTemperatureTrend: buildRegionalTemperatureTrends,
	RegionalHeatmap:          buildRegionalHeatmap,
	SeasonalTrends:           buildSeasonalTrends,
	SeasonalVariability:      buildSeasonalVariability,
	DecadalChanges:           buildDecadalChanges,
	DecadalChangesHeatmap:    buildDecadalChangesHeatmap,
	ExtremeHotEvents:         buildExtremeHotEvents,
	ExtremeColdEvents:        buildExtremeColdEvents,
	ExtremeRatio:             buildExtremeRatio,
	GlobalMap:                buildGlobalMap,
}

// Names returns every chart name in a stable order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether a builder exists for the chart name.
func Known(name string) bool {
	_, ok := builders[name]
	return ok
}

// Build derives the named chart. The second return value is false for an
// unknown chart name.
func Build(name string, res analysis.Results) (Spec, bool) {
	builder, ok := builders[name]
	if !ok {
		return Empty(), false
	}
	return builder(res), true
}

const plotlyTemplate = "plotly_white"

func buildGlobalTemperatureTrend(res analysis.Results) Spec {
	rows := res.AnnualGlobal
	years := make([]float64, len(rows))
	temps := make([]float64, len(rows))
	anomalies := make([]float64, len(rows))
	for i, row := range rows {
		years[i] = float64(row.Year)
		temps[i] = row.TempC
		anomalies[i] = row.Anomaly
	}

	slope, intercept := LinearFit(years, temps)
	trend := make([]float64, len(years))
	for i, y := range years {
		trend[i] = slope*y + intercept
	}

	data := []Trace{
		{
			Type: "scatter", Mode: "lines+markers",
			Name: "Annual Average Temperature",
			X:    anyFloats(years), Y: anyFloats(temps),
			Marker: &Marker{Size: 6},
		},
		{
			Type: "scatter", Mode: "lines",
			Name: "Temperature Anomaly",
			X:    anyFloats(years), Y: anyFloats(anomalies),
			Line:  &Line{Color: "red"},
			YAxis: "y2",
		},
		{
			Type: "scatter", Mode: "lines",
			Name: fmt.Sprintf("Trend: %.4f°C/year", slope),
			X:    anyFloats(years), Y: anyFloats(trend),
			Line: &Line{Color: "black", Dash: "dash"},
		},
	}

	return Spec{
		Data: data,
		Layout: Layout{
			Title:     "Global Average Temperature Trend",
			XAxis:     &Axis{Title: "Year"},
			YAxis:     &Axis{Title: "Temperature (°C)"},
			YAxis2:    &Axis{Title: "Temperature Anomaly (°C)", Overlaying: "y", Side: "right"},
			Legend:    &Legend{X: 0.01, Y: 0.99, BGColor: "rgba(255,255,255,0.8)"},
			HoverMode: "x unified",
			Template:  plotlyTemplate,
			Annotations: []Annotation{{
				X: 0.02, Y: 0.05, XRef: "paper", YRef: "paper",
				Text:      fmt.Sprintf("Warming rate: %.2f°C per century", slope*100),
				ShowArrow: false,
			}},
		},
	}
}

func buildRegionalTemperatureTrends(res analysis.Results) Spec {
	byRegion := map[climate.Region][]analysis.AnnualRegionalRow{}
	minYear, maxYear := 0, 0
	for _, row := range res.AnnualRegional {
		byRegion[row.Region] = append(byRegion[row.Region], row)
		if minYear == 0 || row.Year < minYear {
			minYear = row.Year
		}
		if row.Year > maxYear {
			maxYear = row.Year
		}
	}

	data := []Trace{}
	for _, region := range climate.Regions {
		rows := byRegion[region]
		if len(rows) == 0 {
			continue
		}
		years := make([]int, len(rows))
		anomalies := make([]*float64, len(rows))
		for i, row := range rows {
			years[i] = row.Year
			anomalies[i] = row.Anomaly
		}
		data = append(data, Trace{
			Type: "scatter", Mode: "lines+markers",
			Name: string(region),
			X:    anyInts(years), Y: anyPtrs(anomalies),
			Marker: &Marker{Size: 3},
		})
	}

	layout := Layout{
		Title:     "Temperature Anomalies by Region",
		XAxis:     &Axis{Title: "Year"},
		YAxis:     &Axis{Title: "Temperature Anomaly (°C)"},
		Legend:    &Legend{X: 0.01, Y: 0.99},
		HoverMode: "x unified",
		Template:  plotlyTemplate,
	}
	if len(data) > 0 {
		layout.Shapes = []Shape{{
			Type: "line", X0: minYear, Y0: 0, X1: maxYear, Y1: 0,
			Line: &Line{Color: "black", Width: 1, Dash: "dash"},
		}}
	}

	return Spec{Data: data, Layout: layout}
}

func buildRegionalHeatmap(res analysis.Results) Spec {
	years := sortedYears(res.AnnualRegional)
	yearIdx := indexOf(years)

	anomalies := map[climate.Region][]*float64{}
	for _, row := range res.AnnualRegional {
		if anomalies[row.Region] == nil {
			anomalies[row.Region] = make([]*float64, len(years))
		}
		anomalies[row.Region][yearIdx[row.Year]] = row.Anomaly
	}

	var regions []string
	var z [][]*float64
	for _, region := range climate.Regions {
		series, ok := anomalies[region]
		if !ok {
			continue
		}
		regions = append(regions, string(region))
		z = append(z, series)
	}
	if len(z) == 0 {
		return Empty()
	}

	return Spec{
		Data: []Trace{{
			Type: "heatmap",
			X:    anyInts(years), Y: anyStrings(regions), Z: z,
			Colorscale: "RdBu", ReverseScale: true, ZMid: fptr(0),
			Colorbar: &Colorbar{Title: "Temperature Anomaly (°C)"},
		}},
		Layout: Layout{
			Title:    "Temperature Anomalies by Region and Year",
			XAxis:    &Axis{Title: "Year"},
			YAxis:    &Axis{Title: "Region"},
			Template: plotlyTemplate,
		},
	}
}

var seasonColors = map[climate.Season]string{
	climate.SeasonWinter: "blue",
	climate.SeasonSpring: "green",
	climate.SeasonSummer: "red",
	climate.SeasonFall:   "orange",
}

func buildSeasonalTrends(res analysis.Results) Spec {
	years, pivot := seasonalPivot(res.Seasonal)

	hideLegend := false
	data := []Trace{}
	for _, season := range climate.Seasons {
		raw, ok := pivot[season]
		if !ok {
			continue
		}
		color := seasonColors[season]
		smooth := RollingMean(raw, 5)

		data = append(data, Trace{
			Type: "scatter", Mode: "lines",
			Name: fmt.Sprintf("%s (5-yr average)", season),
			X:    anyInts(years), Y: anyPtrs(smooth),
			Line: &Line{Width: 3, Color: color},
		})
		data = append(data, Trace{
			Type: "scatter", Mode: "lines",
			Name: fmt.Sprintf("%s (raw)", season),
			X:    anyInts(years), Y: anyPtrs(raw),
			Line:    &Line{Width: 1, Color: color},
			Opacity: 0.3, ShowLegend: &hideLegend,
		})
	}

	return Spec{
		Data: data,
		Layout: Layout{
			Title:     "Global Seasonal Temperature Trends",
			XAxis:     &Axis{Title: "Year"},
			YAxis:     &Axis{Title: "Temperature (°C)"},
			Legend:    &Legend{X: 0.01, Y: 0.99},
			HoverMode: "x unified",
			Template:  plotlyTemplate,
		},
	}
}

func buildSeasonalVariability(res analysis.Results) Spec {
	years, pivot := seasonalPivot(res.Seasonal)

	// Range between the warmest and coldest seasonal mean per year.
	ranges := make([]*float64, len(years))
	for i := range years {
		var lo, hi *float64
		for _, season := range climate.Seasons {
			series, ok := pivot[season]
			if !ok || series[i] == nil {
				continue
			}
			v := *series[i]
			if lo == nil || v < *lo {
				lo = fptr(v)
			}
			if hi == nil || v > *hi {
				hi = fptr(v)
			}
		}
		if lo != nil && hi != nil {
			ranges[i] = fptr(*hi - *lo)
		}
	}
	smooth := RollingMean(ranges, 5)

	var fitX, fitY []float64
	for i, r := range ranges {
		if r != nil {
			fitX = append(fitX, float64(years[i]))
			fitY = append(fitY, *r)
		}
	}
	slope, intercept := LinearFit(fitX, fitY)
	trend := make([]*float64, len(years))
	for i, r := range ranges {
		if r != nil {
			trend[i] = fptr(slope*float64(years[i]) + intercept)
		}
	}

	hideLegend := false
	return Spec{
		Data: []Trace{
			{
				Type: "scatter", Mode: "lines",
				Name: "Seasonal Range (5-yr average)",
				X:    anyInts(years), Y: anyPtrs(smooth),
				Line: &Line{Color: "blue", Width: 2},
			},
			{
				Type: "scatter", Mode: "lines",
				Name: "Seasonal Range (raw)",
				X:    anyInts(years), Y: anyPtrs(ranges),
				Line:    &Line{Color: "blue", Width: 1},
				Opacity: 0.3, ShowLegend: &hideLegend,
			},
			{
				Type: "scatter", Mode: "lines",
				Name: fmt.Sprintf("Trend: %.4f°C/year", slope),
				X:    anyInts(years), Y: anyPtrs(trend),
				Line: &Line{Color: "red", Dash: "dash"},
			},
		},
		Layout: Layout{
			Title:     "Seasonal Temperature Variability",
			XAxis:     &Axis{Title: "Year"},
			YAxis:     &Axis{Title: "Temperature Range (°C)"},
			Legend:    &Legend{X: 0.01, Y: 0.99},
			HoverMode: "x unified",
			Template:  plotlyTemplate,
		},
	}
}

func buildDecadalChanges(res analysis.Results) Spec {
	decades, pivot := decadalPivot(res.Decadal)

	data := []Trace{}
	for _, region := range climate.Regions {
		series, ok := pivot[region]
		if !ok {
			continue
		}
		data = append(data, Trace{
			Type: "scatter", Mode: "lines+markers",
			Name: string(region),
			X:    anyInts(decades), Y: anyPtrs(series),
			Marker: &Marker{Size: 10},
		})
	}

	return Spec{
		Data: data,
		Layout: Layout{
			Title:     "Decadal Average Temperatures by Region",
			XAxis:     &Axis{Title: "Decade", TickVals: anyInts(decades)},
			YAxis:     &Axis{Title: "Average Temperature (°C)"},
			Legend:    &Legend{X: 0.01, Y: 0.99},
			HoverMode: "x unified",
			Template:  plotlyTemplate,
		},
	}
}

func buildDecadalChangesHeatmap(res analysis.Results) Spec {
	decades := map[int]bool{}
	for _, row := range res.DecadalChanges {
		decades[row.Decade] = true
	}
	var decadeList []int
	for d := range decades {
		decadeList = append(decadeList, d)
	}
	sort.Ints(decadeList)
	decadeIdx := indexOf(decadeList)

	regions := presentRegions(res.Decadal)
	regionIdx := map[climate.Region]int{}
	for i, r := range regions {
		regionIdx[climate.Region(r)] = i
	}

	z := make([][]*float64, len(decadeList))
	text := make([][]string, len(decadeList))
	for i := range z {
		z[i] = make([]*float64, len(regions))
		text[i] = make([]string, len(regions))
	}
	for _, row := range res.DecadalChanges {
		i := decadeIdx[row.Decade]
		j, ok := regionIdx[row.Region]
		if !ok {
			continue
		}
		z[i][j] = fptr(row.Change)
		text[i][j] = fmt.Sprintf("%.2f", row.Change)
	}
	if len(z) == 0 {
		return Empty()
	}

	return Spec{
		Data: []Trace{{
			Type: "heatmap",
			X:    anyStrings(regions), Y: anyInts(decadeList), Z: z,
			Colorscale: "RdBu", ReverseScale: true, ZMid: fptr(0),
			Colorbar: &Colorbar{Title: "Temperature Change (°C)"},
			Text:     text, TextTemplate: "%{text}",
		}},
		Layout: Layout{
			Title:    "Temperature Change Between Decades by Region",
			XAxis:    &Axis{Title: "Region"},
			YAxis:    &Axis{Title: "Decade"},
			Template: plotlyTemplate,
		},
	}
}

func buildExtremeHotEvents(res analysis.Results) Spec {
	return buildExtremeHeatmap(res, "Extreme Hot Temperature Events by Decade and Region", "YlOrRd",
		func(row analysis.ExtremeCountRow) int { return row.Hot })
}

func buildExtremeColdEvents(res analysis.Results) Spec {
	return buildExtremeHeatmap(res, "Extreme Cold Temperature Events by Decade and Region", "Blues",
		func(row analysis.ExtremeCountRow) int { return row.Cold })
}

func buildExtremeHeatmap(res analysis.Results, title, colorscale string, count func(analysis.ExtremeCountRow) int) Spec {
	decades, regions, idx := extremeGrid(res.ExtremeCounts)
	if len(decades) == 0 {
		return Empty()
	}

	z := make([][]*float64, len(decades))
	text := make([][]string, len(decades))
	for i := range z {
		z[i] = make([]*float64, len(regions))
		text[i] = make([]string, len(regions))
	}
	for _, row := range res.ExtremeCounts {
		i, j := idx(row)
		n := count(row)
		z[i][j] = fptr(float64(n))
		text[i][j] = fmt.Sprintf("%d", n)
	}

	return Spec{
		Data: []Trace{{
			Type: "heatmap",
			X:    anyStrings(regions), Y: anyInts(decades), Z: z,
			Colorscale: colorscale,
			Colorbar:   &Colorbar{Title: "Number of Events"},
			Text:       text, TextTemplate: "%{text}",
		}},
		Layout: Layout{
			Title:    title,
			XAxis:    &Axis{Title: "Region"},
			YAxis:    &Axis{Title: "Decade"},
			Template: plotlyTemplate,
		},
	}
}

func buildExtremeRatio(res analysis.Results) Spec {
	decades, regions, idx := extremeGrid(res.ExtremeCounts)
	if len(decades) == 0 {
		return Empty()
	}

	z := make([][]*float64, len(decades))
	text := make([][]string, len(decades))
	for i := range z {
		z[i] = make([]*float64, len(regions))
		text[i] = make([]string, len(regions))
	}
	for _, row := range res.ExtremeCounts {
		if row.Cold == 0 {
			continue // ratio undefined, leave the cell empty
		}
		i, j := idx(row)
		ratio := float64(row.Hot) / float64(row.Cold)
		z[i][j] = fptr(ratio)
		text[i][j] = fmt.Sprintf("%.2f", ratio)
	}

	return Spec{
		Data: []Trace{{
			Type: "heatmap",
			X:    anyStrings(regions), Y: anyInts(decades), Z: z,
			Colorscale: "RdBu", ZMid: fptr(1),
			Colorbar: &Colorbar{Title: "Ratio (Hot/Cold)"},
			Text:     text, TextTemplate: "%{text}",
		}},
		Layout: Layout{
			Title:    "Ratio of Extreme Hot to Cold Events by Decade and Region",
			XAxis:    &Axis{Title: "Region"},
			YAxis:    &Axis{Title: "Decade"},
			Template: plotlyTemplate,
		},
	}
}

// globalMapFromYear filters the map to the most recent stretch of data.
const globalMapFromYear = 2010

func buildGlobalMap(res analysis.Results) Spec {
	type acc struct {
		lat, lon float64
		sum      float64
		n        int
	}
	byStation := map[string]*acc{}
	for _, o := range res.Observations {
		if o.Year < globalMapFromYear {
			continue
		}
		a, ok := byStation[o.StationID]
		if !ok {
			a = &acc{lat: o.Latitude, lon: o.Longitude}
			byStation[o.StationID] = a
		}
		a.sum += o.TempC
		a.n++
	}

	ids := make([]string, 0, len(byStation))
	for id := range byStation {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lats := make([]float64, len(ids))
	lons := make([]float64, len(ids))
	temps := make([]float64, len(ids))
	for i, id := range ids {
		a := byStation[id]
		lats[i] = a.lat
		lons[i] = a.lon
		temps[i] = a.sum / float64(a.n)
	}

	return Spec{
		Data: []Trace{{
			Type: "scattergeo", Mode: "markers",
			Lat: lats, Lon: lons, Text: ids,
			Marker: &Marker{
				Size: 10, Color: temps,
				Colorscale: "RdBu",
				Colorbar:   &Colorbar{Title: "Temperature (°C)"},
			},
		}},
		Layout: Layout{
			Title:    fmt.Sprintf("Global Average Temperatures (since %d)", globalMapFromYear),
			Template: plotlyTemplate,
			Geo:      &Geo{Projection: Projection{Type: "natural earth"}},
		},
	}
}

func sortedYears(rows []analysis.AnnualRegionalRow) []int {
	seen := map[int]bool{}
	for _, row := range rows {
		seen[row.Year] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func seasonalPivot(rows []analysis.SeasonalRow) ([]int, map[climate.Season][]*float64) {
	seen := map[int]bool{}
	for _, row := range rows {
		seen[row.Year] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	yearIdx := indexOf(years)

	pivot := map[climate.Season][]*float64{}
	for _, row := range rows {
		if pivot[row.Season] == nil {
			pivot[row.Season] = make([]*float64, len(years))
		}
		pivot[row.Season][yearIdx[row.Year]] = fptr(row.TempC)
	}
	return years, pivot
}

func decadalPivot(rows []analysis.DecadalRow) ([]int, map[climate.Region][]*float64) {
	seen := map[int]bool{}
	for _, row := range rows {
		seen[row.Decade] = true
	}
	decades := make([]int, 0, len(seen))
	for d := range seen {
		decades = append(decades, d)
	}
	sort.Ints(decades)
	decadeIdx := indexOf(decades)

	pivot := map[climate.Region][]*float64{}
	for _, row := range rows {
		if pivot[row.Region] == nil {
			pivot[row.Region] = make([]*float64, len(decades))
		}
		pivot[row.Region][decadeIdx[row.Decade]] = fptr(row.TempC)
	}
	return decades, pivot
}

func presentRegions(rows []analysis.DecadalRow) []string {
	seen := map[climate.Region]bool{}
	for _, row := range rows {
		seen[row.Region] = true
	}
	var regions []string
	for _, region := range climate.Regions {
		if seen[region] {
			regions = append(regions, string(region))
		}
	}
	return regions
}

// extremeGrid returns the decade rows and region columns of the extreme
// count heatmaps plus an index function for a row's cell.
func extremeGrid(rows []analysis.ExtremeCountRow) ([]int, []string, func(analysis.ExtremeCountRow) (int, int)) {
	seenDecade := map[int]bool{}
	seenRegion := map[climate.Region]bool{}
	for _, row := range rows {
		seenDecade[row.Decade] = true
		seenRegion[row.Region] = true
	}

	var decades []int
	for d := range seenDecade {
		decades = append(decades, d)
	}
	sort.Ints(decades)
	decadeIdx := indexOf(decades)

	var regions []string
	regionIdx := map[climate.Region]int{}
	for _, region := range climate.Regions {
		if seenRegion[region] {
			regionIdx[region] = len(regions)
			regions = append(regions, string(region))
		}
	}

	return decades, regions, func(row analysis.ExtremeCountRow) (int, int) {
		return decadeIdx[row.Decade], regionIdx[row.Region]
	}
}

func indexOf(vals []int) map[int]int {
	idx := make(map[int]int, len(vals))
	for i, v := range vals {
		idx[v] = i
	}
	return idx
}
