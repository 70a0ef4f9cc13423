package app

import (
	"bufio"

	"github.com/hwdrift/hwdrift/internal/nav"
)

// Key bindings, matching the view's help line:
//
//	Up/k    previous tab      Left/h   scroll up
//	Down/j  next tab          Right/l  scroll down
//	a       jump to Advanced  Tab/e    export baseline
//	q, Esc  quit
//
// Anything else is a no-op.

// readEvent blocks for one key and decodes it into a navigation event.
func readEvent(r *bufio.Reader) (nav.Event, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nav.EventNone, err
	}

	switch b {
	case 'q', 'Q', 0x03: // Ctrl-C
		return nav.EventQuit, nil
	case 'k', 'K':
		return nav.EventPrevTab, nil
	case 'j', 'J':
		return nav.EventNextTab, nil
	case 'h', 'H':
		return nav.EventScrollUp, nil
	case 'l', 'L':
		return nav.EventScrollDown, nil
	case 'a', 'A':
		return nav.EventJumpAdvanced, nil
	case '\t', 'e', 'E':
		return nav.EventExport, nil
	case 0x1b:
		return readEscape(r)
	}
	return nav.EventNone, nil
}

// readEscape distinguishes a bare Esc press from an arrow-key CSI sequence.
// In raw mode the sequence bytes arrive together, so an empty buffer after
// Esc means the key was Esc itself.
func readEscape(r *bufio.Reader) (nav.Event, error) {
	if r.Buffered() == 0 {
		return nav.EventQuit, nil
	}
	b, err := r.ReadByte()
	if err != nil {
		return nav.EventNone, err
	}
	if b != '[' {
		return nav.EventQuit, nil
	}
	final, err := r.ReadByte()
	if err != nil {
		return nav.EventNone, err
	}
	switch final {
	case 'A': // Up
		return nav.EventPrevTab, nil
	case 'B': // Down
		return nav.EventNextTab, nil
	case 'D': // Left
		return nav.EventScrollUp, nil
	case 'C': // Right
		return nav.EventScrollDown, nil
	}
	return nav.EventNone, nil
}
