package chart

import "github.com/HaPhanBaoMinh/feeschart/internal/domain"

const (
	SeriesLabel = "Dataset-2"
	SeriesColor = "#8ecae6"
)

// ToChartDataset maps every sample to one label and one value, keeping order.
// It never aggregates or drops points, and an empty input still yields one
// (empty) dataset.
func ToChartDataset(samples []domain.RawSample, f Formatter) domain.ChartDataset {
	labels := make([]string, 0, len(samples))
	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		labels = append(labels, f.FormatTimestamp(s.TimestampMillis))
		values = append(values, s.Value)
	}
	return domain.ChartDataset{
		Labels: labels,
		Datasets: []domain.Dataset{{
			Fill:            true,
			Label:           SeriesLabel,
			Data:            values,
			BackgroundColor: SeriesColor,
		}},
	}
}
