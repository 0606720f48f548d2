package formatter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/penwyp/go-power-overlay/internal/core/estimator"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, data []estimator.ReasonSummary) error {
	cw := csv.NewWriter(w)

	headers := []string{"Reason", "Wakeups", "Duration (ms)", "Energy (mAh)", "Avg Current (mA)"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, row := range data {
		record := []string{
			row.Reason,
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%d", row.Duration),
			fmt.Sprintf("%.4f", row.Energy),
			fmt.Sprintf("%.1f", averageCurrent(row)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
