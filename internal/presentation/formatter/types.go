package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-power-overlay/internal/core/constants"
	"github.com/penwyp/go-power-overlay/internal/core/estimator"
)

// Formatter writes wakeup reason summaries in one output format
type Formatter interface {
	Format(w io.Writer, data []estimator.ReasonSummary) error
}

// NewFormatter returns the formatter for format (table, json, csv)
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "", "table":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json or csv)", format)
	}
}

// averageCurrent is the mean current in mA over the summary's total duration
func averageCurrent(s estimator.ReasonSummary) float64 {
	if s.Duration <= 0 {
		return 0
	}
	return s.Energy * constants.MsPerHour / float64(s.Duration)
}
