package errors

import "errors"

// Stream errors terminate decoding of the current settings stream.
var (
	// ErrStreamExhausted indicates a field declared more bytes than remain in the stream.
	ErrStreamExhausted = errors.New("settings stream exhausted")

	// ErrFieldCorrupt indicates a length prefix or encoded value is outside its legal set.
	ErrFieldCorrupt = errors.New("settings field is corrupt")

	// ErrUnknownTag indicates a record tag with no known layout.
	ErrUnknownTag = errors.New("unknown settings record tag")

	// ErrValidationRejected indicates a decoded value failed a semantic precondition.
	ErrValidationRejected = errors.New("settings value rejected")
)

// Input errors indicate issues with locating or reading a settings stream.
var (
	// ErrNoInputs indicates no input files matched the provided patterns.
	ErrNoInputs = errors.New("no matching input files found")

	// ErrInputNotFound indicates a specific input file could not be located.
	ErrInputNotFound = errors.New("input file not found")

	// ErrEmptyInput indicates the input contained no bytes at all.
	ErrEmptyInput = errors.New("input is empty")

	// ErrOutputCollision indicates two inputs would be written to the same
	// document.
	ErrOutputCollision = errors.New("output document already claimed by another input")
)

// Configuration errors indicate issues with the tool configuration.
var (
	// ErrInvalidConfig indicates the configuration file is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrInvalidFormatVersion indicates a non-positive format version.
	ErrInvalidFormatVersion = errors.New("invalid format version")

	// ErrUnsupportedOutput indicates an output format other than toml or json.
	ErrUnsupportedOutput = errors.New("unsupported output format")
)

// Script errors indicate issues with a record script given to the encoder.
var (
	// ErrInvalidScript indicates the record script could not be turned into records.
	ErrInvalidScript = errors.New("invalid record script")
)

// Audit errors indicate issues with reading the audit log.
var (
	// ErrNoAuditLog indicates no audit log has been written yet.
	ErrNoAuditLog = errors.New("no audit log found")

	// ErrInvalidDateFormat indicates a date filter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
