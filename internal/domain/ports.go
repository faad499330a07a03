package domain

import "context"

type SeriesRepo interface {
	FetchSeries(ctx context.Context) ([]RawSample, error)
	// Endpoint names the upstream for diagnostics.
	Endpoint() string
}
