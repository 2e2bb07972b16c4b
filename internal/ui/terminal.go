package ui

import (
	"os"

	"golang.org/x/term" //nolint:depguard // Required for TTY detection
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or DefaultWidth when it has none.
func Width(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return width
}
