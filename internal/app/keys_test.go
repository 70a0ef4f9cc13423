package app

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwdrift/hwdrift/internal/nav"
)

func TestReadEvent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  nav.Event
	}{
		{"q quits", "q", nav.EventQuit},
		{"ctrl-c quits", "\x03", nav.EventQuit},
		{"bare esc quits", "\x1b", nav.EventQuit},
		{"k previous tab", "k", nav.EventPrevTab},
		{"j next tab", "j", nav.EventNextTab},
		{"h scroll up", "h", nav.EventScrollUp},
		{"l scroll down", "l", nav.EventScrollDown},
		{"uppercase works too", "J", nav.EventNextTab},
		{"a jumps to advanced", "a", nav.EventJumpAdvanced},
		{"tab exports", "\t", nav.EventExport},
		{"e exports", "e", nav.EventExport},
		{"arrow up", "\x1b[A", nav.EventPrevTab},
		{"arrow down", "\x1b[B", nav.EventNextTab},
		{"arrow left", "\x1b[D", nav.EventScrollUp},
		{"arrow right", "\x1b[C", nav.EventScrollDown},
		{"unknown key ignored", "z", nav.EventNone},
		{"unknown csi ignored", "\x1b[Z", nav.EventNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tt.input))
			ev, err := readEvent(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}
