package widgets

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/HaPhanBaoMinh/feeschart/internal/chart"
	"github.com/HaPhanBaoMinh/feeschart/internal/domain"
	"github.com/HaPhanBaoMinh/feeschart/internal/ui/styles"
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellFill
	cellCursor
	cellAxis
	cellGrid
)

type cell struct {
	r    rune
	kind cellKind
}

// LineChart draws the first dataset of ds as a filled area chart of the given
// size. cursor is a point index to highlight, or -1.
type LineChart struct {
	Data    domain.ChartDataset
	Options chart.Options
	Width   int
	Height  int
	Cursor  int
}

type yScale struct {
	lo, hi float64
	ticks  []float64
}

func newYScale(vals []float64, step float64, rows int) yScale {
	lo, hi := bounds(vals)
	if step > 0 {
		hi = math.Ceil(hi/step) * step
		lo = math.Floor(lo/step) * step
	}
	if hi <= lo {
		if step > 0 {
			hi = lo + step
		} else {
			hi = lo + 1
		}
	}
	s := yScale{lo: lo, hi: hi}
	if step <= 0 {
		s.ticks = []float64{lo, hi}
		return s
	}

	count := int(math.Round((hi-lo)/step)) + 1
	maxTicks := max(2, rows/2)
	stride := int(math.Ceil(float64(count) / float64(maxTicks)))
	for k := 0; k < count; k += stride {
		s.ticks = append(s.ticks, lo+float64(k)*step)
	}
	return s
}

// row maps v onto 0 (top) .. rows-1 (bottom).
func (s yScale) row(v float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	f := (v - s.lo) / (s.hi - s.lo)
	return rows - 1 - int(math.Round(f*float64(rows-1)))
}

func (s yScale) eighths(v float64, rows int) int {
	if math.IsNaN(v) {
		return 0
	}
	f := clamp01((v - s.lo) / (s.hi - s.lo))
	return int(math.Round(f * float64(rows*8)))
}

func (c LineChart) View() string {
	vals := c.Data.Values()
	n := len(vals)
	rows := c.Height - 1
	legend := ""
	if c.Options.Legend && len(c.Data.Datasets) > 0 {
		rows--
		legend = c.fillStyle().Render("■") + " " + c.Data.Datasets[0].Label
	}
	if n == 0 || rows < 1 {
		return ""
	}

	scale := newYScale(vals, c.Options.YStepSize, rows)
	tickAt := make(map[int]string, len(scale.ticks))
	labelW := 0
	for _, t := range scale.ticks {
		r := scale.row(t, rows)
		if _, taken := tickAt[r]; taken {
			continue
		}
		s := chart.FormatNumber(t)
		tickAt[r] = s
		labelW = max(labelW, utf8.RuneCountInString(s))
	}

	plotW := c.Width - labelW - 1
	if plotW < 1 {
		return ""
	}

	pointCol := func(i int) int {
		if n == 1 || plotW == 1 {
			return 0
		}
		return int(math.Round(float64(i) * float64(plotW-1) / float64(n-1)))
	}
	colValue := func(col int) float64 {
		if n == 1 || plotW == 1 {
			return vals[0]
		}
		p := float64(col) * float64(n-1) / float64(plotW-1)
		i := int(math.Floor(p))
		if i >= n-1 {
			return vals[n-1]
		}
		frac := p - float64(i)
		return vals[i] + (vals[i+1]-vals[i])*frac
	}

	tickCols := map[int]bool{}
	xLabels := make([]rune, plotW)
	for i := range xLabels {
		xLabels[i] = ' '
	}
	nextFree := 0
	for i := 0; i < n; i++ {
		lbl := c.Options.XTickLabel(c.Data.Labels, i)
		if lbl == "" {
			continue
		}
		col := pointCol(i)
		tickCols[col] = true
		lr := []rune(lbl)
		if len(lr) > plotW {
			continue
		}
		start := clampInt(col-len(lr)/2, 0, plotW-len(lr))
		if start < nextFree {
			continue
		}
		copy(xLabels[start:], lr)
		nextFree = start + len(lr) + 1
	}

	cursorCol := -1
	if c.Cursor >= 0 && c.Cursor < n {
		cursorCol = pointCol(c.Cursor)
	}

	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, plotW)
	}
	for col := 0; col < plotW; col++ {
		e := scale.eighths(colValue(col), rows)
		for r := 0; r < rows; r++ {
			fromBottom := rows - 1 - r
			level := e - fromBottom*8
			cl := cell{r: ' ', kind: cellEmpty}
			switch {
			case level >= 8:
				cl = cell{r: blocks[7], kind: cellFill}
			case level > 0:
				cl = cell{r: blocks[level-1], kind: cellFill}
			case c.Options.YGrid && tickAt[r] != "":
				cl = cell{r: '·', kind: cellGrid}
			case c.Options.XGrid && tickCols[col]:
				cl = cell{r: '┊', kind: cellGrid}
			}
			if col == cursorCol {
				if cl.kind == cellEmpty {
					cl.r = '│'
				}
				cl.kind = cellCursor
			}
			grid[r][col] = cl
		}
	}

	var lines []string
	if legend != "" {
		lines = append(lines, strings.Repeat(" ", labelW+1)+legend)
	}
	for r := 0; r < rows; r++ {
		var b strings.Builder
		lbl, isTick := tickAt[r]
		b.WriteString(strings.Repeat(" ", labelW-utf8.RuneCountInString(lbl)))
		b.WriteString(c.axisStyle().Render(lbl))
		if isTick {
			b.WriteString(c.axisStyle().Render("┤"))
		} else {
			b.WriteString(c.axisStyle().Render("│"))
		}
		b.WriteString(c.renderRow(grid[r]))
		lines = append(lines, b.String())
	}
	lines = append(lines, strings.Repeat(" ", labelW+1)+c.axisStyle().Render(string(xLabels)))

	return strings.Join(lines, "\n")
}

// renderRow styles runs of equal cell kinds in one go.
func (c LineChart) renderRow(cells []cell) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && cells[i].kind == cells[start].kind {
			continue
		}
		run := make([]rune, 0, i-start)
		for _, cl := range cells[start:i] {
			run = append(run, cl.r)
		}
		b.WriteString(c.styleFor(cells[start].kind).Render(string(run)))
		start = i
	}
	return b.String()
}

func (c LineChart) styleFor(k cellKind) lipgloss.Style {
	switch k {
	case cellFill:
		return c.fillStyle()
	case cellCursor:
		return renderer().NewStyle().Inherit(styles.Tooltip)
	case cellAxis, cellGrid:
		return c.axisStyle()
	default:
		return renderer().NewStyle()
	}
}

func (c LineChart) fillStyle() lipgloss.Style {
	color := chart.SeriesColor
	if len(c.Data.Datasets) > 0 && c.Data.Datasets[0].BackgroundColor != "" {
		color = c.Data.Datasets[0].BackgroundColor
	}
	return renderer().NewStyle().Foreground(lipgloss.Color(color))
}

func (c LineChart) axisStyle() lipgloss.Style {
	return renderer().NewStyle().Inherit(styles.Faint)
}
