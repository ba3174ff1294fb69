// Package workflows provides high-level orchestration for tdmigrate
// commands.
//
// Workflows coordinate the packages below them (utils, migrate, configs,
// audit) to implement complete user-facing features. Each workflow handles
// a single command's business logic, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Migrate: Runs settings streams through the engine and writes one
//     document per stream
//   - Inspect: Lists the records of a stream without applying them
//   - Encode: Builds a stream from a TOML record script
//   - Log: Reads and filters the audit log
//   - ListTags: Lists the known record tags
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. A stream
// that stops early is reported per input rather than as a workflow error,
// because records before the failure were already applied:
//
//	result, err := workflows.Migrate(ctx, opts)
//	for _, f := range result.Files {
//	    var decodeErr *migrate.DecodeError
//	    if errors.As(f.Err, &decodeErr) {
//	        // decodeErr.Index records were applied.
//	    }
//	}
package workflows
