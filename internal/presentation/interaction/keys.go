package interaction

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
)

// Action is what the overlay view does in response to a key
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionZoomIn
	ActionZoomOut
	ActionPanLeft
	ActionPanRight
	ActionNextReason
	ActionPrevReason
	ActionClearReason
	ActionToggleSignal
)

// ActionFor maps a key event to an Action
func ActionFor(event KeyEvent) Action {
	switch event.Type {
	case KeyEscape:
		return ActionQuit
	case KeyArrowLeft:
		return ActionPanLeft
	case KeyArrowRight:
		return ActionPanRight
	case KeyArrowUp:
		return ActionZoomIn
	case KeyArrowDown:
		return ActionZoomOut
	}

	switch event.Key {
	case 'q', 'Q', 3: // 3 is Ctrl+C
		return ActionQuit
	case '+', '=':
		return ActionZoomIn
	case '-', '_':
		return ActionZoomOut
	case 'h':
		return ActionPanLeft
	case 'l':
		return ActionPanRight
	case 'n', 'j':
		return ActionNextReason
	case 'p', 'k':
		return ActionPrevReason
	case '0':
		return ActionClearReason
	case 's':
		return ActionToggleSignal
	}
	return ActionNone
}

// parseInput parses raw keyboard input
func parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	if buf[0] == 27 { // ESC
		if len(buf) == 1 {
			return &KeyEvent{Key: 27, Type: KeyEscape}
		}
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return &KeyEvent{Type: KeyArrowUp}
			case 'B':
				return &KeyEvent{Type: KeyArrowDown}
			case 'C':
				return &KeyEvent{Type: KeyArrowRight}
			case 'D':
				return &KeyEvent{Type: KeyArrowLeft}
			}
		}
		return nil
	}

	return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
}
