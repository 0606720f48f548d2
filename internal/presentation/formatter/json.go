package formatter

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-power-overlay/internal/core/estimator"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(w io.Writer, data []estimator.ReasonSummary) error {
	if data == nil {
		data = []estimator.ReasonSummary{}
	}
	out, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
