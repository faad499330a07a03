// Package chart turns raw fee samples into the dataset and options handed to
// the line chart renderer.
package chart

import "time"

// DefaultTimeLayout is a time-of-day layout (hours:minutes:seconds).
const DefaultTimeLayout = "15:04:05"

// Formatter renders sample timestamps as time-of-day labels in a fixed
// location, so the output only depends on its input and configuration.
type Formatter struct {
	Location *time.Location
	Layout   string
}

func NewFormatter(loc *time.Location, layout string) Formatter {
	if loc == nil {
		loc = time.Local
	}
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return Formatter{Location: loc, Layout: layout}
}

func (f Formatter) FormatTimestamp(millis int64) string {
	loc, layout := f.Location, f.Layout
	if loc == nil {
		loc = time.Local
	}
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return time.UnixMilli(millis).In(loc).Format(layout)
}
