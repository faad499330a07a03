package widgets

import (
	"math"
	"strings"
)

// eighth-height blocks, index 0 is 1/8
var blocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws vals as one row of blocks scaled between min(0, lowest)
// and the highest value.
func Sparkline(vals []float64, width int) string {
	if len(vals) == 0 || width <= 0 {
		return ""
	}
	lo, hi := bounds(vals)
	span := hi - lo
	// sample evenly over vals
	step := float64(len(vals)) / float64(width)
	var b strings.Builder
	for i := 0; i < width; i++ {
		idx := int(math.Min(float64(len(vals)-1), math.Floor(float64(i)*step)))
		v := 0.0
		if span > 0 {
			v = clamp01((vals[idx] - lo) / span)
		}
		level := int(math.Round(v * float64(len(blocks)-1)))
		b.WriteRune(blocks[clampInt(level, 0, len(blocks)-1)])
	}
	return b.String()
}

// Bar draws a horizontal bar filled to fraction v of width.
func Bar(v float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	v = clamp01(v)

	fill := int(math.Round(v * float64(width)))
	if v > 0 && fill == 0 {
		fill = 1
	}
	fill = clampInt(fill, 0, width)

	return strings.Repeat("█", fill) + strings.Repeat(" ", width-fill)
}

func bounds(vals []float64) (lo, hi float64) {
	lo, hi = 0, math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(hi, -1) {
		hi = 0
	}
	return lo, hi
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
