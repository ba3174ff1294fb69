package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/tdmigrate/internal/audit"
	"github.com/PolarWolf314/tdmigrate/internal/configs"
	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/migrate"
	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/PolarWolf314/tdmigrate/internal/state"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
)

// MigrateOptions configures the migrate workflow.
type MigrateOptions struct {
	// Inputs are files, directories or globs naming settings streams.
	// "-" reads a single stream from stdin.
	Inputs []string

	// FormatVersion is the container version the streams were written
	// with.
	FormatVersion int32

	// CustomDayBackground tells the decoder a custom day background exists.
	CustomDayBackground bool

	// CacheMaxDataSize overrides the cache threshold when positive.
	CacheMaxDataSize int64

	// Environment selects the base fallback configuration.
	Environment mtp.Environment

	// OutputDir receives the documents. Empty writes each next to its
	// input.
	OutputDir string

	// Format is the document encoding.
	Format configs.OutputFormat

	// ConfigScale and NightMode preset the sink as command-line overrides
	// would.
	ConfigScale int
	NightMode   bool

	// DryRun decodes and applies every stream without writing documents.
	DryRun bool

	// Audit records one audit entry per input.
	Audit bool

	// Stdout receives the document of a stream read from stdin. Nil
	// writes it to a file like any other input.
	Stdout io.Writer

	Logger migrate.Logger
}

// FileResult is the outcome for one input.
type FileResult struct {
	Input     string
	Output    string
	Records   int
	Discarded int
	Fallback  string
	Warnings  []string

	// Err is set when the stream could not be migrated. A *migrate.DecodeError
	// means records before the failing one were still applied.
	Err error
}

// MigrateResult contains the outcome of a migrate operation.
type MigrateResult struct {
	RunID  string
	Files  []FileResult
	DryRun bool
}

// Failed returns the number of inputs that could not be migrated.
func (r *MigrateResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Migrate runs every input through the migration engine and writes one
// document per stream.
//
// A failing stream does not stop the others; its error is recorded in the
// corresponding FileResult and no document is written for it. An input
// whose document path was already taken by an earlier input fails with
// ErrOutputCollision.
//
// Returns ErrNoInputs if no input matches.
// Returns ErrInvalidFormatVersion if FormatVersion is not positive.
func Migrate(ctx context.Context, opts MigrateOptions) (*MigrateResult, error) {
	if opts.FormatVersion <= 0 {
		return nil, fmt.Errorf("%w: %d", kerrors.ErrInvalidFormatVersion, opts.FormatVersion)
	}
	format := opts.Format
	if format == "" {
		format = configs.OutputTOML
	}
	if _, err := configs.ParseOutputFormat(string(format)); err != nil {
		return nil, err
	}

	inputs, err := utils.ResolveInputs(opts.Inputs)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Debugf("Resolved %s:%s", utils.Plural(len(inputs), "input"), utils.FormatPaths(inputs))
	}

	base := mtp.DefaultConfig(opts.Environment)
	engineOptions := migrate.Options{
		FormatVersion:          opts.FormatVersion,
		HasCustomDayBackground: opts.CustomDayBackground,
		CacheMaxDataSize:       opts.CacheMaxDataSize,
		BaseConfig:             &base,
	}

	result := &MigrateResult{
		RunID:  audit.NewRunID(),
		DryRun: opts.DryRun,
	}

	root := utils.CommonDir(inputs)
	claimed := make(map[string]string)

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var file FileResult
		output := outputFor(input, root, opts, format)
		if prev, ok := claimed[output]; ok {
			file = FileResult{Input: input, Err: fmt.Errorf("%w: %s is written for %s", kerrors.ErrOutputCollision, output, prev)}
		} else {
			if output != "" {
				claimed[output] = input
			}
			file = migrateOne(input, output, opts, format, engineOptions, result.RunID)
		}
		result.Files = append(result.Files, file)

		if opts.Audit {
			audit.Log(migrateAuditEntry(result.RunID, opts.FormatVersion, file))
		}
	}

	return result, nil
}

// outputFor returns the document path for input, "-" for stdout, or "" on
// a dry run.
func outputFor(input, root string, opts MigrateOptions, format configs.OutputFormat) string {
	switch {
	case opts.DryRun:
		return ""
	case input == "-" && opts.Stdout != nil:
		return "-"
	}
	return utils.OutputPath(input, root, opts.OutputDir, string(format))
}

func migrateOne(input, output string, opts MigrateOptions, format configs.OutputFormat, engineOptions migrate.Options, runID string) FileResult {
	file := FileResult{Input: input}

	data, err := utils.ReadInput(input)
	if err != nil {
		file.Err = err
		return file
	}

	store := state.NewStore(state.WithConfigScale(opts.ConfigScale), state.WithNightMode(opts.NightMode))
	runResult, err := migrate.New(store, opts.Logger, engineOptions).Run(data)
	file.Records = runResult.Records
	file.Discarded = runResult.Discarded
	file.Warnings = runResult.Warnings
	if err != nil {
		file.Err = err
		return file
	}
	file.Fallback = runResult.Fallback.Source.String()

	if output == "" {
		return file
	}

	doc := newDocument(runID, input, opts.FormatVersion, runResult, store.Snapshot())

	file.Output = output
	if output == "-" {
		file.Err = writeDocument(opts.Stdout, format, doc)
		return file
	}
	file.Err = saveDocument(output, format, doc)
	return file
}

func saveDocument(path string, format configs.OutputFormat, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := writeDocument(f, format, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeDocument(w io.Writer, format configs.OutputFormat, doc Document) error {
	if format == configs.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		return nil
	}

	if err := configs.WriteTOML(w, doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

func migrateAuditEntry(runID string, formatVersion int32, file FileResult) audit.Entry {
	entry := audit.NewEntry(runID, "migrate")
	entry.Input = file.Input
	entry.Output = file.Output
	entry.FormatVersion = formatVersion
	entry.Records = file.Records
	entry.Discarded = file.Discarded
	entry.Warnings = len(file.Warnings)
	entry.Fallback = file.Fallback
	entry.Outcome = audit.OutcomeApplied
	fillAuditFailure(&entry, file.Err)
	return entry
}

func fillAuditFailure(entry *audit.Entry, err error) {
	if err == nil {
		return
	}

	entry.Outcome = audit.OutcomeFailed
	entry.Code = string(kerrors.Classify(err))
	entry.Error = err.Error()

	var decodeErr *migrate.DecodeError
	if errors.As(err, &decodeErr) {
		entry.Outcome = audit.OutcomeStopped
		index, offset := decodeErr.Index, decodeErr.Offset
		entry.FailedIndex = &index
		entry.Offset = &offset
		if decodeErr.TagRead {
			entry.FailedTag = decodeErr.Tag.String()
		}
	}
}
