package utils

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTerminal returns true if stdout is a terminal. Spinners are only
// drawn when it is.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of stdout, or fallback when stdout is
// not a terminal.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
