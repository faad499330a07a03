package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/HaPhanBaoMinh/feeschart/internal/chart"
	"github.com/HaPhanBaoMinh/feeschart/internal/domain"
	"github.com/HaPhanBaoMinh/feeschart/internal/infrastructure/llama"
	"github.com/HaPhanBaoMinh/feeschart/internal/infrastructure/mock"
	"github.com/HaPhanBaoMinh/feeschart/internal/observability"
)

func newObservedModel(t *testing.T, repo domain.SeriesRepo, opts ...Option) (Model, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	opts = append([]Option{
		WithLogger(zap.New(core)),
		WithFormatter(chart.NewFormatter(time.UTC, "")),
	}, opts...)
	return New(repo, opts...), logs
}

func llamaServer(t *testing.T, h http.HandlerFunc) *llama.Repo {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	cfg := llama.DefaultConfig()
	cfg.BaseURL = server.URL
	return llama.New(cfg)
}

type countingRepo struct {
	domain.SeriesRepo
	calls atomic.Int32
}

func (r *countingRepo) FetchSeries(ctx context.Context) ([]domain.RawSample, error) {
	r.calls.Add(1)
	return r.SeriesRepo.FetchSeries(ctx)
}

// runCmd executes cmd and flattens batches into the messages they produce.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// step runs the model's fetch and feeds the result back through Update.
func step(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.fetch()()
	var next tea.Model
	require.NotPanics(t, func() { next, _ = m.Update(msg) })
	return next.(Model)
}

func TestSuccessfulFetchBecomesReady(t *testing.T) {
	repo := llamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"totalDataChart": [[1700000000000, 500], [1700003600000, 1500]]}`))
	})
	m, logs := newObservedModel(t, repo)
	require.Equal(t, domain.StateLoading, m.State())

	m = step(t, m)

	assert.Equal(t, domain.StateReady, m.State())
	assert.Equal(t, []float64{500, 1500}, m.Dataset().Values())
	assert.Equal(t, []string{"22:13:20", "23:13:20"}, m.Dataset().Labels)
	assert.Equal(t, 0, logs.Len())
}

func TestNon200StaysLoadingAndLogsOnce(t *testing.T) {
	repo := llamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	m, logs := newObservedModel(t, repo)

	m = step(t, m)

	assert.Equal(t, domain.StateLoading, m.State())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, repo.Endpoint(), entry.ContextMap()["endpoint"])
	assert.Contains(t, m.View(), loadingText)
}

func TestTransportErrorStaysLoadingAndLogsOnce(t *testing.T) {
	m, logs := newObservedModel(t, mock.Failing(errors.New("connection refused")))

	m = step(t, m)

	assert.Equal(t, domain.StateLoading, m.State())
	assert.Equal(t, 1, logs.Len())
}

func TestMalformedJSONStaysLoading(t *testing.T) {
	repo := llamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	m, logs := newObservedModel(t, repo)

	m = step(t, m)

	assert.Equal(t, domain.StateLoading, m.State())
	assert.Equal(t, 1, logs.Len())
}

func TestEmptySeriesStaysLoading(t *testing.T) {
	m, logs := newObservedModel(t, &mock.Repo{Samples: []domain.RawSample{}})

	m = step(t, m)

	assert.Equal(t, domain.StateLoading, m.State())
	assert.Empty(t, m.Dataset().Labels)
	require.Len(t, m.Dataset().Datasets, 1)
	assert.Empty(t, m.Dataset().Datasets[0].Data)
	assert.Equal(t, 0, logs.Len())
	assert.Contains(t, m.View(), loadingText)
}

func TestReadyNeverReturnsToLoading(t *testing.T) {
	m, _ := newObservedModel(t, mock.New())
	m = step(t, m)
	require.Equal(t, domain.StateReady, m.State())

	next, cmd := m.Update(seriesMsg{})
	assert.Equal(t, domain.StateReady, next.(Model).State())
	assert.Nil(t, cmd)

	next, cmd = next.Update(fetchFailedMsg{errors.New("late failure")})
	assert.Equal(t, domain.StateReady, next.(Model).State())
	assert.Nil(t, cmd)
}

func TestInitFetchesOnce(t *testing.T) {
	repo := &countingRepo{SeriesRepo: mock.New()}
	m, _ := newObservedModel(t, repo)

	queue := runCmd(m.Init())
	require.Equal(t, int32(1), repo.calls.Load())

	queue = append(queue,
		seriesMsg(mock.New().Samples),
		fetchFailedMsg{errors.New("late failure")},
		tea.WindowSizeMsg{Width: 100, Height: 30},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}},
	)

	var model tea.Model = m
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 50, "update loop did not settle")
		msg := queue[0]
		queue = queue[1:]
		var cmd tea.Cmd
		model, cmd = model.Update(msg)
		queue = append(queue, runCmd(cmd)...)
	}

	assert.Equal(t, domain.StateReady, model.(Model).State())
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestViewReady(t *testing.T) {
	m, _ := newObservedModel(t, mock.New())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = step(t, next.(Model))

	view := m.View()
	assert.NotContains(t, view, loadingText)
	assert.Contains(t, view, "Value: ")
	assert.Contains(t, view, "48 points")
	assert.Contains(t, view, "╭")
}

func TestSpinnerStopsWhenReady(t *testing.T) {
	m, _ := newObservedModel(t, mock.New())
	m = step(t, m)

	_, cmd := m.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestCursorKeys(t *testing.T) {
	m, _ := newObservedModel(t, mock.New())
	m = step(t, m)
	last := m.Dataset().Len() - 1
	require.Equal(t, last, m.cursor)

	press := func(m Model, k tea.KeyMsg) Model {
		next, _ := m.Update(k)
		return next.(Model)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, last, m.cursor)

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, last-1, m.cursor)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, m.cursor)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	assert.Equal(t, 0, m.cursor)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, last, m.cursor)
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	m, _ := newObservedModel(t, mock.New())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.False(t, next.(Model).tableOpen)
}

func TestTableToggle(t *testing.T) {
	m, _ := newObservedModel(t, mock.New())
	m = step(t, m)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(Model)
	require.True(t, m.tableOpen)
	assert.Len(t, m.table.Rows(), m.Dataset().Len())
	assert.Contains(t, m.View(), "VALUE")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, m.Dataset().Len()-2, m.cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.False(t, next.(Model).tableOpen)
}

func TestQuitCancelsContext(t *testing.T) {
	m, _ := newObservedModel(t, mock.New())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, m.ctx.Err())
}

func TestFetchRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg, "")

	m, _ := newObservedModel(t, mock.Failing(errors.New("boom")), WithMetrics(metrics))
	step(t, m)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchTotal.WithLabelValues(observability.OutcomeFailure)))
}

func TestTableColWidths(t *testing.T) {
	wTime, wValue := tableColWidths(100)
	assert.Equal(t, 24, wTime)
	assert.Equal(t, 40, wValue)

	wTime, wValue = tableColWidths(10)
	assert.Equal(t, 10, wTime)
	assert.Equal(t, 12, wValue)
}
