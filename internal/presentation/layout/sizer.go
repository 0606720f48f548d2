package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/go-power-overlay/internal/core/constants"
	"github.com/penwyp/go-power-overlay/internal/util"
)

// Sizer measures and pads terminal text
type Sizer struct {
	Width  int
	Height int
}

// NewSizer creates a Sizer for a terminal of the given size
func NewSizer(width, height int) *Sizer {
	return &Sizer{Width: width, Height: height}
}

// DetectSizer reads the size of stdout, falling back to 80x24
func DetectSizer() *Sizer {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width, height = 80, 24
	}
	return NewSizer(width, height)
}

// DisplayWidth calculates the cell width of a string containing wide characters
func (s Sizer) DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads a string to a specific display width
func (s Sizer) PadString(text string, width int, leftAlign bool) string {
	actualWidth := s.DisplayWidth(text)
	if actualWidth >= width {
		return text
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// Truncate cuts text to width cells, adding an ellipsis when shortened
func (s Sizer) Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// ChartWidth returns the number of plot columns that fit in the terminal
func (s Sizer) ChartWidth() int {
	// Leave room for the y-axis labels and a margin
	width := s.Width - 12
	if width < constants.MinChartWidth {
		width = constants.MinChartWidth
	}

	util.LogDebugf("ChartWidth %d (terminal %d)", width, s.Width)
	return width
}
