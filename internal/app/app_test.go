package app

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 80))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	assert.Equal(t, "anything", truncate("anything", 0))

	// Non-ASCII monitor names must never be cut mid-rune.
	name := "モニター Süd-Display 12345"
	for width := 1; width < len(name); width++ {
		cut := truncate(name, width)
		assert.True(t, utf8.ValidString(cut), "width %d produced invalid UTF-8", width)
		assert.True(t, strings.HasPrefix(name, cut), "width %d is not a prefix", width)
	}
}
