package mock

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/HaPhanBaoMinh/feeschart/internal/domain"
)

// Repo serves an in-memory fee series, for running without network access.
type Repo struct {
	Samples []domain.RawSample
	Err     error
	Delay   time.Duration
}

// New returns a repo with a deterministic 48-point hourly series.
func New() *Repo {
	start := time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)
	return &Repo{Samples: seriesFrom(start, time.Hour, 48, rand.New(rand.NewSource(1)))}
}

// Failing returns a repo whose fetch always fails with err.
func Failing(err error) *Repo {
	return &Repo{Err: err}
}

func (r *Repo) Endpoint() string {
	return "mock://fees"
}

func (r *Repo) FetchSeries(ctx context.Context) ([]domain.RawSample, error) {
	if r.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.Delay):
		}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]domain.RawSample, len(r.Samples))
	copy(out, r.Samples)
	return out, nil
}

// helpers
func seriesFrom(start time.Time, step time.Duration, n int, rnd *rand.Rand) []domain.RawSample {
	out := make([]domain.RawSample, n)
	v := 2500.0
	for i := range out {
		// daily swing plus a small random walk
		v += (rnd.Float64() - 0.5) * 400
		swing := 1500 * math.Sin(float64(i)*2*math.Pi/24)
		out[i] = domain.RawSample{
			TimestampMillis: start.Add(time.Duration(i) * step).UnixMilli(),
			Value:           math.Round(math.Max(0, v+swing)),
		}
	}
	return out
}
