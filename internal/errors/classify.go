package errors

import (
	"errors"
	"os"
)

// Code is a short error category recorded in the audit log.
type Code string

const (
	CodeNone       Code = ""
	CodeExhausted  Code = "stream_exhausted"
	CodeCorrupt    Code = "field_corrupt"
	CodeUnknownTag Code = "unknown_tag"
	CodeRejected   Code = "validation_rejected"
	CodeInput      Code = "input"
	CodeConfig     Code = "config"
	CodeIO         Code = "io"
	CodeUnknown    Code = "unknown"
)

// Classify maps an error onto its category using sentinel matching only.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeNone
	case errors.Is(err, ErrStreamExhausted):
		return CodeExhausted
	case errors.Is(err, ErrFieldCorrupt):
		return CodeCorrupt
	case errors.Is(err, ErrUnknownTag):
		return CodeUnknownTag
	case errors.Is(err, ErrValidationRejected):
		return CodeRejected
	case errors.Is(err, ErrNoInputs), errors.Is(err, ErrInputNotFound), errors.Is(err, ErrEmptyInput),
		errors.Is(err, ErrNoAuditLog), errors.Is(err, ErrOutputCollision):
		return CodeInput
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidFormatVersion), errors.Is(err, ErrUnsupportedOutput),
		errors.Is(err, ErrInvalidScript), errors.Is(err, ErrInvalidDateFormat):
		return CodeConfig
	}

	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}

// IsStreamError reports whether err terminated decoding of a stream.
func IsStreamError(err error) bool {
	switch Classify(err) {
	case CodeExhausted, CodeCorrupt, CodeUnknownTag, CodeRejected:
		return true
	}
	return false
}
