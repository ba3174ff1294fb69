// Package audit records every tdmigrate run.
//
// The log is stored as JSON Lines (one JSON object per line) at:
//
//	$XDG_DATA_HOME/tdmigrate/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC) and a run id shared by
//     all inputs of one command
//   - User and host
//   - Operation, input and output paths, format version
//   - Records applied, discarded records and warnings
//   - The outcome and, when a stream stopped early, the failing record
//     index, tag, offset and error code
//
// Audit logging is best-effort. If writing fails the operation continues
// without error. Malformed lines are skipped when reading.
package audit
