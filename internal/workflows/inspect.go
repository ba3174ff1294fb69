package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tdmigrate/internal/audit"
	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/migrate"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
)

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	// Input is a single settings stream path, or "-" for stdin.
	Input string

	FormatVersion       int32
	CustomDayBackground bool
	CacheMaxDataSize    int64

	// Audit records an audit entry for the run.
	Audit bool
}

// InspectResult contains the outcome of an inspect operation.
type InspectResult struct {
	Input   string
	Size    int
	Entries []migrate.Entry

	// Err is the *migrate.DecodeError that ended the walk early, if any.
	// Entries still lists every record read before it.
	Err error
}

// Inspect lists the records of a settings stream without applying them.
//
// A stream that stops early is not an error of the workflow: the failure
// is reported in InspectResult.Err next to the records read before it.
//
// Returns ErrInputNotFound or ErrEmptyInput if the input cannot be read.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	if opts.FormatVersion <= 0 {
		return nil, fmt.Errorf("%w: %d", kerrors.ErrInvalidFormatVersion, opts.FormatVersion)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := utils.ReadInput(opts.Input)
	if err != nil {
		return nil, err
	}

	entries, decodeErr := migrate.Inspect(data, migrate.Options{
		FormatVersion:          opts.FormatVersion,
		HasCustomDayBackground: opts.CustomDayBackground,
		CacheMaxDataSize:       opts.CacheMaxDataSize,
	})

	result := &InspectResult{
		Input:   opts.Input,
		Size:    len(data),
		Entries: entries,
		Err:     decodeErr,
	}

	if opts.Audit {
		entry := audit.NewEntry(audit.NewRunID(), "inspect")
		entry.Input = opts.Input
		entry.FormatVersion = opts.FormatVersion
		entry.Records = len(entries)
		entry.Outcome = audit.OutcomeApplied
		for _, e := range entries {
			if e.Discarded {
				entry.Discarded++
			}
		}
		fillAuditFailure(&entry, decodeErr)
		audit.Log(entry)
	}

	return result, nil
}
