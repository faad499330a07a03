package domain

import (
	"encoding/json"
	"fmt"
)

// RawSample is one [timestampMillis, value] pair of an upstream series.
type RawSample struct {
	TimestampMillis int64
	Value           float64
}

func (s *RawSample) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decode sample: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode sample: want 2 elements, got %d", len(pair))
	}
	s.TimestampMillis = int64(pair[0])
	s.Value = pair[1]
	return nil
}

func (s RawSample) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.TimestampMillis, s.Value})
}

type Dataset struct {
	Fill            bool      `json:"fill"`
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
}

// ChartDataset is what the chart renderer consumes: one label per point and
// a single dataset carrying the values in the same order.
type ChartDataset struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Values returns the data of the first dataset, or nil.
func (c ChartDataset) Values() []float64 {
	if len(c.Datasets) == 0 {
		return nil
	}
	return c.Datasets[0].Data
}

func (c ChartDataset) Len() int {
	return len(c.Values())
}

type DisplayState int

const (
	StateLoading DisplayState = iota
	StateReady
)

func (s DisplayState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	default:
		return fmt.Sprintf("DisplayState(%d)", int(s))
	}
}
