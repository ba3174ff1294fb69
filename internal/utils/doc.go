// Package utils provides shared helpers for the tdmigrate commands.
//
// # Input Utilities
//
//   - ResolveInputs: expands files, directories and ** globs into inputs
//   - ReadInput: reads a stream from a file or from stdin ("-")
//   - CommonDir, OutputPath: name the document written for an input
//
// # System Utilities
//
//   - GetUsername, GetHostname: identity recorded in the audit log
//
// # Terminal Utilities
//
//   - IsTerminal, IsStdoutTerminal, TerminalWidth
//
// # String Utilities
//
//   - FormatPaths, Plural, Truncate
package utils
