// Package display prints the level line chart and the power overlay to a terminal.
package display

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/presentation/layout"
	"github.com/penwyp/go-power-overlay/internal/util"
)

const (
	lineGlyph    = "•"
	overlayGlyph = "█"
	emptyGlyph   = " "
	labelWidth   = 10
)

// Scale maps timeline milliseconds onto chart columns.
type Scale interface {
	Extent() (start, end int64)
	Width() int
	Resolution() int64
	TimeToColumn(ms int64) (int, bool)
}

// LevelSource provides the series drawn as the level line.
type LevelSource interface {
	Config() model.LevelConfig
	Series() []model.LevelPoint
}

// SelectionSource provides the highlighted selector option.
type SelectionSource interface {
	CurrentSelection() string
}

// SurfaceConfig controls the printed frame.
type SurfaceConfig struct {
	Height     int
	Color      bool
	TimeFormat string
}

// TerminalSurface collects overlay drawing commands and prints them with the
// level line chart on Flush.
type TerminalSurface struct {
	config    SurfaceConfig
	scale     Scale
	levels    LevelSource
	selection SelectionSource
	styles    Styles
	sizer     *layout.Sizer

	overlay         []bool
	drawCalls       int
	selectorVisible bool
	options         []string
}

// NewTerminalSurface creates a surface drawing against scale.
func NewTerminalSurface(config SurfaceConfig, scale Scale, levels LevelSource, selection SelectionSource) *TerminalSurface {
	if config.Height <= 0 {
		config.Height = 12
	}
	if config.TimeFormat == "" {
		config.TimeFormat = "15:04:05"
	}
	return &TerminalSurface{
		config:    config,
		scale:     scale,
		levels:    levels,
		selection: selection,
		styles:    DefaultStyles(config.Color),
		sizer:     layout.NewSizer(scale.Width()+labelWidth, config.Height),
		overlay:   make([]bool, scale.Width()),
	}
}

// Clear erases overlay content drawn so far.
func (ts *TerminalSurface) Clear() {
	ts.overlay = make([]bool, ts.scale.Width())
	ts.drawCalls = 0
}

// Draw marks every column covered by points.
func (ts *TerminalSurface) Draw(points []model.Point) {
	ts.drawCalls++
	start, end := ts.scale.Extent()
	for _, p := range points {
		from := max(p.StartTime, start)
		to := min(max(p.EndTime, p.StartTime), end)
		if to < from {
			continue
		}
		first, ok := ts.scale.TimeToColumn(from)
		if !ok {
			continue
		}
		last, _ := ts.scale.TimeToColumn(to)
		for c := first; c <= last && c < len(ts.overlay); c++ {
			ts.overlay[c] = true
		}
	}
}

func (ts *TerminalSurface) ShowSelector(visible bool) {
	ts.selectorVisible = visible
}

// RenderSelector stores the selector options shown under the chart.
func (ts *TerminalSurface) RenderSelector(options []string) {
	ts.options = append([]string(nil), options...)
}

// SelectorVisible reports the last ShowSelector call.
func (ts *TerminalSurface) SelectorVisible() bool {
	return ts.selectorVisible
}

// DrawCalls returns the number of Draw calls since the last Clear.
func (ts *TerminalSurface) DrawCalls() int {
	return ts.drawCalls
}

// OverlayColumns returns a copy of the highlighted columns.
func (ts *TerminalSurface) OverlayColumns() []bool {
	return append([]bool(nil), ts.overlay...)
}

// Flush prints the current frame to w.
func (ts *TerminalSurface) Flush(w io.Writer) error {
	var b strings.Builder
	ts.writeTitle(&b)
	ts.writeChart(&b)
	ts.writeOverlayRow(&b)
	ts.writeAxis(&b)
	if ts.selectorVisible {
		ts.writeSelector(&b)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (ts *TerminalSurface) writeTitle(b *strings.Builder) {
	cfg := ts.levels.Config()
	title := fmt.Sprintf("%s (%s)  %s ms/px", cfg.DisplayName, cfg.Unit, util.FormatNumber(int(ts.scale.Resolution())))
	b.WriteString(ts.styles.render(ts.styles.Title, title))
	b.WriteString("\n")
}

// columnValues returns the level value shown in each column, carrying the last
// known value forward. Columns before the first point are NaN.
func (ts *TerminalSurface) columnValues() []float64 {
	series := ts.levels.Series()
	width := ts.scale.Width()
	values := make([]float64, width)
	start, _ := ts.scale.Extent()
	res := ts.scale.Resolution()

	for c := 0; c < width; c++ {
		bucketEnd := start + int64(c+1)*res
		idx := sort.Search(len(series), func(i int) bool { return series[i].Time >= bucketEnd })
		if idx == 0 {
			values[c] = math.NaN()
			continue
		}
		values[c] = series[idx-1].Value
	}
	return values
}

func (ts *TerminalSurface) writeChart(b *strings.Builder) {
	values := ts.columnValues()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	height := ts.config.Height

	rows := make([][]string, height)
	for r := range rows {
		rows[r] = make([]string, len(values))
		for c := range rows[r] {
			rows[r][c] = emptyGlyph
		}
	}
	if !math.IsInf(lo, 1) {
		for c, v := range values {
			if math.IsNaN(v) {
				continue
			}
			rows[valueRow(v, lo, hi, height)][c] = ts.styles.render(ts.styles.Line, lineGlyph)
		}
	}

	for r := 0; r < height; r++ {
		label := ""
		switch {
		case math.IsInf(lo, 1):
		case r == 0:
			label = util.FormatValue(hi)
		case r == height-1:
			label = util.FormatValue(lo)
		}
		b.WriteString(ts.sizer.PadString(label, labelWidth-2, false))
		b.WriteString(" │")
		b.WriteString(strings.Join(rows[r], ""))
		b.WriteString("\n")
	}
}

// valueRow maps v into [0, height) with row 0 at the top.
func valueRow(v, lo, hi float64, height int) int {
	if hi == lo {
		return height / 2
	}
	frac := (v - lo) / (hi - lo)
	row := height - 1 - int(math.Round(frac*float64(height-1)))
	return min(max(row, 0), height-1)
}

func (ts *TerminalSurface) writeOverlayRow(b *strings.Builder) {
	var row strings.Builder
	for _, on := range ts.overlay {
		if on {
			row.WriteString(ts.styles.render(ts.styles.Overlay, overlayGlyph))
		} else {
			row.WriteString(emptyGlyph)
		}
	}
	label := ""
	if ts.selectorVisible && ts.selection.CurrentSelection() != "" {
		label = "power"
	}
	b.WriteString(ts.sizer.PadString(label, labelWidth-2, false))
	b.WriteString(" │")
	b.WriteString(row.String())
	b.WriteString("\n")
}

func (ts *TerminalSurface) writeAxis(b *strings.Builder) {
	start, end := ts.scale.Extent()
	width := ts.scale.Width()
	tp := util.GetTimeProvider()
	left := tp.Format(time.UnixMilli(start), ts.config.TimeFormat)
	right := tp.Format(time.UnixMilli(end), ts.config.TimeFormat)

	axis := ts.sizer.PadString(left, width-ts.sizer.DisplayWidth(right), true) + right
	b.WriteString(strings.Repeat(" ", labelWidth))
	b.WriteString(ts.styles.render(ts.styles.Axis, axis))
	b.WriteString("\n")
}

func (ts *TerminalSurface) writeSelector(b *strings.Builder) {
	selected := ts.selection.CurrentSelection()
	parts := make([]string, 0, len(ts.options)+1)

	none := "(none)"
	if selected == "" {
		parts = append(parts, ts.styles.render(ts.styles.Selected, "["+none+"]"))
	} else {
		parts = append(parts, ts.styles.render(ts.styles.Option, " "+none+" "))
	}
	for _, opt := range ts.options {
		text := ts.sizer.Truncate(opt, 32)
		if opt == selected {
			parts = append(parts, ts.styles.render(ts.styles.Selected, "["+text+"]"))
		} else {
			parts = append(parts, ts.styles.render(ts.styles.Option, " "+text+" "))
		}
	}

	b.WriteString("Wakeup reason:")
	b.WriteString(strings.Join(parts, ""))
	b.WriteString("\n")
}
