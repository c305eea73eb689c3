package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 40

// Wrap word-wraps text to width and returns the resulting lines.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
