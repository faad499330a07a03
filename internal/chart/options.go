package chart

import (
	"math"
	"strconv"
)

// Options is the fixed chart configuration passed to the renderer.
type Options struct {
	XTickEvery int // label every n-th point on the x axis
	XGrid      bool
	YGrid      bool
	YStepSize  float64
	Legend     bool
}

func DefaultOptions() Options {
	return Options{
		XTickEvery: 2,
		XGrid:      false,
		YGrid:      false,
		YStepSize:  1000,
		Legend:     false,
	}
}

// XTickLabel returns the tick text for point index; points that are not on
// the tick stride get an empty label.
func (o Options) XTickLabel(labels []string, index int) string {
	if index < 0 || index >= len(labels) {
		return ""
	}
	every := o.XTickEvery
	if every < 1 {
		every = 1
	}
	if index%every != 0 {
		return ""
	}
	return labels[index]
}

// TooltipLabel is the hover text for a point with value y.
func (o Options) TooltipLabel(y float64) string {
	if math.IsNaN(y) {
		y = 0
	}
	return "Value: " + FormatNumber(y)
}

// FormatNumber prints v with the fewest digits that round-trip.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
