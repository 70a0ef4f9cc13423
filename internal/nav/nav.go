package nav

import (
	"github.com/hwdrift/hwdrift/pkg/types"
)

// Event is one interpreted input. Unrecognized events are no-ops; no
// transition ever fails.
type Event int

const (
	EventNone Event = iota
	EventNextTab
	EventPrevTab
	EventScrollUp
	EventScrollDown
	EventJumpAdvanced
	EventExport
	EventQuit
)

// Action is the side effect the event loop must perform after a
// transition. The state machine itself performs no I/O.
type Action int

const (
	ActionNone Action = iota
	// ActionExport asks the loop to write the current snapshot through the
	// export codec. Export does not change navigation state.
	ActionExport
	// ActionQuit is terminal: the loop should begin shutdown, and the
	// state machine ignores all further events.
	ActionQuit
)

// State tracks the active tab and per-tab scroll offsets. It is created
// once at startup, mutated only by Apply, and never persisted.
type State struct {
	tabs       []types.Category
	active     int
	offsets    map[types.Category]int
	maxOffsets map[types.Category]int
	quit       bool
}

// NewState starts on the first category with all scroll offsets at zero.
func NewState() *State {
	return &State{
		tabs:       types.Categories(),
		offsets:    make(map[types.Category]int),
		maxOffsets: make(map[types.Category]int),
	}
}

// ActiveTab returns the category currently selected.
func (s *State) ActiveTab() types.Category {
	return s.tabs[s.active]
}

// ScrollOffset returns the scroll position of the active tab.
func (s *State) ScrollOffset() int {
	return s.offsets[s.ActiveTab()]
}

// OffsetFor returns the scroll position of any tab.
func (s *State) OffsetFor(tab types.Category) int {
	return s.offsets[tab]
}

// Tabs returns the fixed cyclic tab order.
func (s *State) Tabs() []types.Category {
	return s.tabs
}

// Quit reports whether the terminal transition has happened.
func (s *State) Quit() bool {
	return s.quit
}

// SetMaxOffset records the scroll ceiling for a tab. The renderer supplies
// it from the tab's renderable line count; the state machine only clamps.
func (s *State) SetMaxOffset(tab types.Category, max int) {
	if max < 0 {
		max = 0
	}
	s.maxOffsets[tab] = max
	if s.offsets[tab] > max {
		s.offsets[tab] = max
	}
}

// Apply transitions the state for one event and returns the side effect the
// caller must perform. After Quit, every event is ignored.
func (s *State) Apply(ev Event) Action {
	if s.quit {
		return ActionNone
	}

	switch ev {
	case EventNextTab:
		s.active = (s.active + 1) % len(s.tabs)
	case EventPrevTab:
		s.active = (s.active - 1 + len(s.tabs)) % len(s.tabs)
	case EventScrollUp:
		tab := s.ActiveTab()
		if s.offsets[tab] > 0 {
			s.offsets[tab]--
		}
	case EventScrollDown:
		tab := s.ActiveTab()
		if s.offsets[tab] < s.maxOffsets[tab] {
			s.offsets[tab]++
		}
	case EventJumpAdvanced:
		for i, tab := range s.tabs {
			if tab == types.CategoryAdvanced {
				s.active = i
				break
			}
		}
	case EventExport:
		return ActionExport
	case EventQuit:
		s.quit = true
		return ActionQuit
	}
	return ActionNone
}
