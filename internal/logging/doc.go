// Package logger provides leveled logging for the tdmigrate commands.
//
// Output is controlled by two flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: additionally shows debug and error details, including one
//     line per decoded record
//
// Without flags only WarnfAlways output reaches the terminal; command
// results and failures are printed by the cmd layer itself.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Reading %s", path)
//
// Logger satisfies migrate.Logger, so it can be handed to an Engine
// directly.
package logger
