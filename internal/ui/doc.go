// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content by meaning rather than by color:
//
//	ui.Code.Sprint("tdmigrate config init")  // Commands
//	ui.Path.Sprint("tdata/settingss")        // File paths
//	ui.Tag.Sprint("ConnectionType")          // Record tags
//	ui.Highlight.Sprint("2000000")           // Values
//	ui.Muted.Sprint("discarded")             // Secondary text
//
// Done, Failed, Warned and Hint build the status lines commands end with.
//
// Colors are disabled when NO_COLOR is set or the terminal does not
// support them. Formatters then fall back to text decorations: backticks
// for Code, quotes for Highlight, parentheses for Muted and angle
// brackets for Tag.
package ui
