// Package errors provides typed error values for tdmigrate.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Stream errors: a settings stream could not be decoded
//     (ErrStreamExhausted, ErrFieldCorrupt, ErrUnknownTag,
//     ErrValidationRejected). All four end the current stream.
//   - Input errors: the byte source could not be read (ErrNoInputs,
//     ErrInputNotFound, ErrEmptyInput)
//   - Configuration errors: tool configuration issues (ErrInvalidConfig)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("record %d (%s): %w", index, tag, errors.ErrUnknownTag)
//
// Classify an error for logs and the audit trail:
//
//	code := errors.Classify(err)
package errors
