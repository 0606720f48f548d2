package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/penwyp/go-power-overlay/internal/core/estimator"
	"github.com/penwyp/go-power-overlay/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Reason", "Wakeups", "Duration", "Energy", "Avg Current"},
	}
}

func (f *TableFormatter) Format(w io.Writer, data []estimator.ReasonSummary) error {
	rows := make([][]string, 0, len(data)+1)
	var totalCount int
	var totalDuration int64
	var totalEnergy float64

	for _, row := range data {
		rows = append(rows, f.values(row))
		totalCount += row.Count
		totalDuration += row.Duration
		totalEnergy += row.Energy
	}
	total := f.values(estimator.ReasonSummary{
		Reason:   "Total",
		Count:    totalCount,
		Duration: totalDuration,
		Energy:   totalEnergy,
	})

	widths := f.calculateColumnWidths(append(rows, total))

	var b strings.Builder
	f.printBorder(&b, widths, "top")
	f.printRow(&b, f.headers, widths)
	f.printBorder(&b, widths, "middle")
	for _, row := range rows {
		f.printRow(&b, row, widths)
	}
	f.printBorder(&b, widths, "middle")
	f.printRow(&b, total, widths)
	f.printBorder(&b, widths, "bottom")

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TableFormatter) values(row estimator.ReasonSummary) []string {
	return []string{
		row.Reason,
		fmt.Sprintf("%d", row.Count),
		util.FormatDuration(time.Duration(row.Duration) * time.Millisecond),
		util.FormatEnergy(row.Energy),
		fmt.Sprintf("%.1f mA", averageCurrent(row)),
	}
}

// calculateColumnWidths determines the width of each column from its content
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(value))
		}
	}

	// Minimum widths for readability
	for i := range widths {
		widths[i] = max(widths[i], 8)
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right + "\n")
}

// printRow prints a row; the reason column is left-aligned, numbers right-aligned
func (f *TableFormatter) printRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		if i == 0 {
			b.WriteString(" " + runewidth.FillRight(value, widths[i]) + " │")
		} else {
			b.WriteString(" " + runewidth.FillLeft(value, widths[i]) + " │")
		}
	}
	b.WriteString("\n")
}
