package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for different types of CLI output.
var (
	// Code formats runnable commands. `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file or directory paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --format.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats emphasized values such as counts and versions.
	// 'single quotes' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text. (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}

	// Tag formats record tag names. <angle brackets> without color.
	Tag = Formatter{color.New(color.FgMagenta), "<", ">"}
)

// Done, Failed, Warned and Hint prefix a status line with its marker.
func Done(msg string) string   { return Success.Sprint("✓") + " " + msg }
func Failed(msg string) string { return Error.Sprint("✗") + " " + msg }
func Warned(msg string) string { return Warning.Sprint("⚠") + " " + msg }
func Hint(msg string) string   { return Info.Sprint("→") + " " + msg }
