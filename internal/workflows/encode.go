package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/PolarWolf314/tdmigrate/internal/audit"
	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
	"github.com/PolarWolf314/tdmigrate/internal/scheme"
)

// EncodeOptions configures the encode workflow.
type EncodeOptions struct {
	// Script is the path of a TOML record script.
	Script string

	// Output is where the stream is written. Empty leaves it in
	// EncodeResult.Data only.
	Output string

	// FormatVersion and CacheMaxDataSize are the values records are
	// validated against.
	FormatVersion    int32
	CacheMaxDataSize int64

	// AllowInvalid skips validation so that rejected records can be
	// produced on purpose.
	AllowInvalid bool

	// Audit records an audit entry for the run.
	Audit bool
}

// EncodeResult contains the outcome of an encode operation.
type EncodeResult struct {
	Output  string
	Records int
	Data    []byte
}

type script struct {
	Records []scriptRecord `toml:"record"`
}

type scriptRecord struct {
	Tag    scheme.Tag      `toml:"tag"`
	Fields *toml.Primitive `toml:"fields"`
}

// ParseScript turns a TOML record script into records:
//
//	[[record]]
//	tag = "AutoStart"
//	[record.fields]
//	value = 1
//
// Field names are the record's TOML keys. A key that matches no field is
// an error. Each record is validated against env unless allowInvalid is
// set.
func ParseScript(data []byte, env scheme.Env, allowInvalid bool) ([]scheme.Record, error) {
	var s script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidScript, err)
	}

	records := make([]scheme.Record, 0, len(s.Records))
	for i, r := range s.Records {
		if r.Tag == 0 {
			return nil, fmt.Errorf("%w: record %d has no tag", kerrors.ErrInvalidScript, i)
		}

		rec, err := scheme.NewRecord(r.Tag)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", kerrors.ErrInvalidScript, i, err)
		}

		if r.Fields != nil {
			if err := md.PrimitiveDecode(*r.Fields, rec); err != nil {
				return nil, fmt.Errorf("%w: record %d (%s): %v", kerrors.ErrInvalidScript, i, r.Tag, err)
			}
		}

		if !allowInvalid {
			if err := scheme.Validate(rec, env); err != nil {
				return nil, fmt.Errorf("record %d (%s): %w", i, r.Tag, err)
			}
		}
		records = append(records, rec)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", kerrors.ErrInvalidScript, strings.Join(keys, ", "))
	}

	return records, nil
}

// EncodeRecords writes records as a settings stream.
func EncodeRecords(records []scheme.Record) ([]byte, error) {
	w := qstream.NewWriter()
	for _, rec := range records {
		scheme.Encode(w, rec)
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Encode builds a settings stream from a record script. It is the inverse
// of Inspect and is mostly used to produce fixtures.
//
// Returns ErrInvalidScript if the script cannot be parsed.
// Returns ErrValidationRejected if a record would be rejected by the
// decoder and AllowInvalid is not set.
func Encode(ctx context.Context, opts EncodeOptions) (*EncodeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.Script)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrInputNotFound, opts.Script)
		}
		return nil, fmt.Errorf("reading script: %w", err)
	}

	env := scheme.DefaultEnv(opts.FormatVersion)
	if opts.CacheMaxDataSize > 0 {
		env.CacheMaxDataSize = opts.CacheMaxDataSize
	}

	records, err := ParseScript(data, env, opts.AllowInvalid)
	if err != nil {
		return nil, err
	}

	stream, err := EncodeRecords(records)
	if err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}

	result := &EncodeResult{
		Output:  opts.Output,
		Records: len(records),
		Data:    stream,
	}

	if opts.Output != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Output), 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(opts.Output, stream, 0644); err != nil {
			return nil, fmt.Errorf("writing stream: %w", err)
		}
	}

	if opts.Audit {
		entry := audit.NewEntry(audit.NewRunID(), "encode")
		entry.Input = opts.Script
		entry.Output = opts.Output
		entry.FormatVersion = opts.FormatVersion
		entry.Records = len(records)
		entry.Outcome = audit.OutcomeApplied
		audit.Log(entry)
	}

	return result, nil
}
