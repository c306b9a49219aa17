package charts

// LinearFit computes a least-squares line y = slope*x + intercept.
// Fewer than two points yield a flat line through the data (or zero).
func LinearFit(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	if len(xs) != len(ys) || len(xs) == 0 {
		return 0, 0
	}
	if len(xs) == 1 {
		return 0, ys[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// RollingMean computes a centered rolling mean over the series. A window
// position that extends past either end or covers a missing value yields
// nil, matching a full-window rolling average.
func RollingMean(vals []*float64, window int) []*float64 {
	out := make([]*float64, len(vals))
	if window <= 0 {
		return out
	}
	before := (window - 1) / 2
	after := window - 1 - before

	for i := range vals {
		lo := i - before
		hi := i + after
		if lo < 0 || hi >= len(vals) {
			continue
		}
		sum := 0.0
		complete := true
		for j := lo; j <= hi; j++ {
			if vals[j] == nil {
				complete = false
				break
			}
			sum += *vals[j]
		}
		if complete {
			m := sum / float64(window)
			out[i] = &m
		}
	}
	return out
}

func anyInts(vals []int) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func anyFloats(vals []float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func anyPtrs(vals []*float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

func anyStrings(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func fptr(v float64) *float64 {
	return &v
}
