// Package screen replays terminal output onto a virtual screen for tests.
package screen

import (
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// Screen is a fixed-size grid of cells with a cursor
type Screen struct {
	rows    int
	cols    int
	buffer  [][]rune
	cursorX int
	cursorY int
}

// New creates a blank screen
func New(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols, buffer: make([][]rune, rows)}
	for i := range s.buffer {
		s.buffer[i] = blankLine(cols)
	}
	return s
}

func blankLine(cols int) []rune {
	line := make([]rune, cols)
	for j := range line {
		line[j] = ' '
	}
	return line
}

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Replay writes output onto a rows x cols screen, honouring cursor movement
// and clear sequences, and returns what is left visible.
func Replay(output string, rows, cols int) *Screen {
	s := New(rows, cols)
	runes := []rune(output)
	for i := 0; i < len(runes); {
		switch {
		case runes[i] == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			i = s.escape(runes, i+2)
		case runes[i] == '\r':
			s.cursorX = 0
			i++
		case runes[i] == '\n':
			s.newline()
			i++
		default:
			s.put(runes[i])
			i++
		}
	}
	return s
}

// escape handles the CSI sequence whose parameters start at i and returns the
// index after it.
func (s *Screen) escape(runes []rune, i int) int {
	var params []int
	current := 0
	for ; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
		case r == ';':
			params = append(params, current)
			current = 0
		case r == '?':
			// private mode prefix, e.g. cursor visibility
		default:
			params = append(params, current)
			s.command(r, params)
			return i + 1
		}
	}
	return i
}

func (s *Screen) command(cmd rune, params []int) {
	param := func(n, def int) int {
		if len(params) > n && params[n] > 0 {
			return params[n]
		}
		return def
	}

	switch cmd {
	case 'H', 'f':
		s.cursorY = min(param(0, 1), s.rows) - 1
		s.cursorX = min(param(1, 1), s.cols) - 1
	case 'J':
		switch param(0, 0) {
		case 0:
			s.clearLineFrom(s.cursorY, s.cursorX)
			for y := s.cursorY + 1; y < s.rows; y++ {
				s.buffer[y] = blankLine(s.cols)
			}
		case 2, 3:
			for y := range s.buffer {
				s.buffer[y] = blankLine(s.cols)
			}
		}
	case 'K':
		s.clearLineFrom(s.cursorY, s.cursorX)
	}
}

func (s *Screen) clearLineFrom(y, x int) {
	for j := x; j < s.cols; j++ {
		s.buffer[y][j] = ' '
	}
}

func (s *Screen) put(r rune) {
	if s.cursorX >= s.cols {
		s.newline()
	}
	s.buffer[s.cursorY][s.cursorX] = r
	s.cursorX++
}

func (s *Screen) newline() {
	s.cursorX = 0
	if s.cursorY < s.rows-1 {
		s.cursorY++
		return
	}
	copy(s.buffer, s.buffer[1:])
	s.buffer[s.rows-1] = blankLine(s.cols)
}

// Render returns the screen content with trailing spaces trimmed
func (s *Screen) Render() string {
	lines := make([]string, s.rows)
	for i := range s.buffer {
		lines[i] = s.Line(i)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// Line returns one row of the screen with trailing spaces trimmed
func (s *Screen) Line(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	return strings.TrimRight(string(s.buffer[row]), " ")
}

// Contains reports whether text is visible on the screen
func (s *Screen) Contains(text string) bool {
	return strings.Contains(s.Render(), text)
}
