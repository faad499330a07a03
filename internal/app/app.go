// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/HaPhanBaoMinh/feeschart/internal/chart"
	"github.com/HaPhanBaoMinh/feeschart/internal/domain"
	"github.com/HaPhanBaoMinh/feeschart/internal/observability"
	"github.com/HaPhanBaoMinh/feeschart/internal/ui/styles"
	"github.com/HaPhanBaoMinh/feeschart/internal/ui/widgets"
)

const (
	loadingText   = "Loading your data"
	defaultWidth  = 80
	defaultHeight = 24
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	repo    domain.SeriesRepo
	log     *zap.Logger
	metrics *observability.Metrics

	formatter chart.Formatter
	options   chart.Options

	state   domain.DisplayState
	dataset domain.ChartDataset
	cursor  int

	// panes
	tableOpen bool
	table     table.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap

	title         string
	width, height int
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *Model) {
		m.metrics = metrics
	}
}

func WithFormatter(f chart.Formatter) Option {
	return func(m *Model) {
		m.formatter = f
	}
}

func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithContext sets the parent of the context handed to the fetch.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if m.cancel != nil {
			m.cancel()
		}
		m.ctx, m.cancel = context.WithCancel(ctx)
	}
}

func New(repo domain.SeriesRepo, opts ...Option) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		ctx:       ctx,
		cancel:    cancel,
		repo:      repo,
		log:       zap.NewNop(),
		formatter: chart.NewFormatter(time.Local, ""),
		options:   chart.DefaultOptions(),
		state:     domain.StateLoading,
		cursor:    -1,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		help:      help.New(),
		keys:      newKeyMap(),
		title:     repo.Endpoint(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.table = table.New(
		table.WithColumns([]table.Column{{Title: "TIME", Width: 12}, {Title: "VALUE", Width: 16}}),
		table.WithHeight(12),
	)
	return m
}

func (m Model) State() domain.DisplayState {
	return m.state
}

func (m Model) Dataset() domain.ChartDataset {
	return m.dataset
}

type seriesMsg []domain.RawSample
type fetchFailedMsg struct{ err error }

// Init starts the only fetch this model ever makes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	ctx, repo, metrics := m.ctx, m.repo, m.metrics
	return func() tea.Msg {
		start := time.Now()
		samples, err := repo.FetchSeries(ctx)
		metrics.ObserveFetch(len(samples), time.Since(start), err)
		if err != nil {
			return fetchFailedMsg{err}
		}
		return seriesMsg(samples)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case seriesMsg:
		m.dataset = chart.ToChartDataset(msg, m.formatter)
		if m.state == domain.StateLoading && m.dataset.Len() > 0 {
			m.state = domain.StateReady
			m.cursor = m.dataset.Len() - 1
		}
		m.cursor = clamp(m.cursor, -1, m.dataset.Len()-1)
		m.rebuildTable()
		return m, nil

	case fetchFailedMsg:
		// nothing is shown to the user; the view stays on the loading indicator
		m.log.Warn("fetch series failed",
			zap.String("endpoint", m.repo.Endpoint()),
			zap.Error(msg.err))
		return m, nil

	case spinner.TickMsg:
		if m.state != domain.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layoutTable()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
			return m, tea.Quit
		}
		if m.state != domain.StateReady {
			return m, nil
		}
		last := m.dataset.Len() - 1

		switch {
		case key.Matches(msg, m.keys.Table):
			m.tableOpen = !m.tableOpen
			if m.tableOpen {
				m.table.SetCursor(max(m.cursor, 0))
				m.table.Focus()
			} else {
				m.table.Blur()
			}
			return m, nil

		case m.tableOpen:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			m.cursor = clamp(m.table.Cursor(), 0, last)
			return m, cmd

		case key.Matches(msg, m.keys.Left):
			m.cursor = clamp(m.cursor-1, 0, last)
		case key.Matches(msg, m.keys.Right):
			m.cursor = clamp(m.cursor+1, 0, last)
		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
		case key.Matches(msg, m.keys.End):
			m.cursor = last
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) rebuildTable() {
	vals := m.dataset.Values()
	rows := make([]table.Row, 0, len(vals))
	for i, v := range vals {
		rows = append(rows, table.Row{m.dataset.Labels[i], chart.FormatNumber(v)})
	}
	m.table.SetRows(rows)
	m.layoutTable()
}

func (m *Model) layoutTable() {
	w, h := m.size()
	wTime, wValue := tableColWidths(w - 4)
	m.table.SetColumns([]table.Column{
		{Title: "TIME", Width: wTime},
		{Title: "VALUE", Width: wValue},
	})
	m.table.SetWidth(w - 4)
	m.table.SetHeight(max(h-6, 3))
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) View() string {
	if m.state == domain.StateLoading {
		return m.loadingView()
	}
	w, h := m.size()

	vals := m.dataset.Values()
	head := styles.Title.Render("feeschart") +
		styles.Header.Render(fmt.Sprintf(" │ %s │ %d points ", m.title, len(vals))) +
		styles.Spinner.Render(widgets.Sparkline(vals, clamp(w/4, 8, 40)))
	tooltip := m.tooltip()
	footer := styles.Footer.Render(m.help.View(m.keys))

	// the box border takes two rows and its border plus padding four columns
	bodyH := h - lipgloss.Height(head) - lipgloss.Height(tooltip) - lipgloss.Height(footer) - 2
	var body string
	if m.tableOpen {
		body = styles.Box.Render(m.table.View())
	} else {
		body = styles.Box.Render(widgets.LineChart{
			Data:    m.dataset,
			Options: m.options,
			Width:   w - 4,
			Height:  bodyH,
			Cursor:  m.cursor,
		}.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, head, body, tooltip, footer)
}

func (m Model) loadingView() string {
	content := m.spinner.View() + " " + styles.Loading.Render(loadingText)
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) tooltip() string {
	vals := m.dataset.Values()
	if m.cursor < 0 || m.cursor >= len(vals) {
		return ""
	}
	v := vals[m.cursor]
	hi := 0.0
	for _, x := range vals {
		hi = math.Max(hi, x)
	}
	frac := 0.0
	if hi > 0 {
		frac = v / hi
	}
	return styles.Tooltip.Render(fmt.Sprintf(" %s  %s  %s",
		m.dataset.Labels[m.cursor], m.options.TooltipLabel(v), widgets.Bar(frac, 16)))
}
