package charts

// Spec is a declarative Plotly figure: a trace list plus layout. It is
// marshalled as-is and handed to Plotly.newPlot on the dashboard page.
type Spec struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Empty is the payload served when no chart can be produced; the page
// renders an empty plot instead of breaking.
func Empty() Spec {
	return Spec{Data: []Trace{}, Layout: Layout{}}
}

// Trace is one series in a figure. X and Y hold years, region names, or
// numbers depending on the trace type; missing values are JSON nulls.
type Trace struct {
	Type         string       `json:"type,omitempty"`
	Mode         string       `json:"mode,omitempty"`
	Name         string       `json:"name,omitempty"`
	X            []any        `json:"x,omitempty"`
	Y            []any        `json:"y,omitempty"`
	Z            [][]*float64 `json:"z,omitempty"`
	Lat          []float64    `json:"lat,omitempty"`
	Lon          []float64    `json:"lon,omitempty"`
	Text         any          `json:"text,omitempty"`
	TextTemplate string       `json:"texttemplate,omitempty"`
	Opacity      float64      `json:"opacity,omitempty"`
	ShowLegend   *bool        `json:"showlegend,omitempty"`
	YAxis        string       `json:"yaxis,omitempty"`
	Line         *Line        `json:"line,omitempty"`
	Marker       *Marker      `json:"marker,omitempty"`
	Colorscale   string       `json:"colorscale,omitempty"`
	ReverseScale bool         `json:"reversescale,omitempty"`
	ZMid         *float64     `json:"zmid,omitempty"`
	Colorbar     *Colorbar    `json:"colorbar,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

type Marker struct {
	Size       float64   `json:"size,omitempty"`
	Color      []float64 `json:"color,omitempty"`
	Colorscale string    `json:"colorscale,omitempty"`
	Colorbar   *Colorbar `json:"colorbar,omitempty"`
}

type Colorbar struct {
	Title string `json:"title,omitempty"`
}

type Layout struct {
	Title       string       `json:"title,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	YAxis2      *Axis        `json:"yaxis2,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	Template    string       `json:"template,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Geo         *Geo         `json:"geo,omitempty"`
}

type Axis struct {
	Title      string `json:"title,omitempty"`
	Overlaying string `json:"overlaying,omitempty"`
	Side       string `json:"side,omitempty"`
	TickVals   []any  `json:"tickvals,omitempty"`
}

type Legend struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	BGColor string  `json:"bgcolor,omitempty"`
}

type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref,omitempty"`
	YRef      string  `json:"yref,omitempty"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
}

type Shape struct {
	Type string `json:"type,omitempty"`
	X0   any    `json:"x0,omitempty"`
	Y0   any    `json:"y0,omitempty"`
	X1   any    `json:"x1,omitempty"`
	Y1   any    `json:"y1,omitempty"`
	Line *Line  `json:"line,omitempty"`
}

type Geo struct {
	Projection Projection `json:"projection"`
}

type Projection struct {
	Type string `json:"type,omitempty"`
}
