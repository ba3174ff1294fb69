package migrate

import (
	"fmt"

	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/PolarWolf314/tdmigrate/internal/qstream"
	"github.com/PolarWolf314/tdmigrate/internal/scheme"
	"github.com/PolarWolf314/tdmigrate/internal/state"
)

// Logger is the logging the engine needs. logger.Logger satisfies it.
type Logger interface {
	Debugf(msg string, args ...any)
	Warnf(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// Options are the stream-level inputs of a run.
type Options struct {
	// FormatVersion is the version stamped on the container file.
	FormatVersion int32

	// HasCustomDayBackground tells whether a custom day background exists
	// next to the settings file.
	HasCustomDayBackground bool

	// CacheMaxDataSize overrides scheme.DefaultCacheMaxDataSize when
	// positive.
	CacheMaxDataSize int64

	// BaseConfig is the configuration the fallback is built on. The zero
	// value selects mtp.DefaultConfig for production.
	BaseConfig *mtp.Config
}

func (o Options) env() scheme.Env {
	env := scheme.DefaultEnv(o.FormatVersion)
	env.HasCustomDayBackground = o.HasCustomDayBackground
	if o.CacheMaxDataSize > 0 {
		env.CacheMaxDataSize = o.CacheMaxDataSize
	}
	return env
}

func (o Options) base() mtp.Config {
	if o.BaseConfig != nil {
		return *o.BaseConfig
	}
	return mtp.DefaultConfig(mtp.EnvironmentProduction)
}

// Result contains the outcome of a successful run.
type Result struct {
	// Records is the number of records applied.
	Records int

	// Discarded is the number of applied records whose tag is obsolete.
	Discarded int

	// Context holds the values accumulated for the fallback configuration.
	Context *scheme.Context

	// Fallback is the materialized fallback configuration.
	Fallback scheme.Fallback

	// Warnings are problems that did not stop the run.
	Warnings []string
}

// DecodeError reports the record that stopped a run.
type DecodeError struct {
	// Index is the zero-based position of the failing record, which is
	// also the number of records applied before it.
	Index int
	// Tag is only meaningful when TagRead is set; a stream can end inside
	// the tag itself.
	Tag     scheme.Tag
	TagRead bool
	// Offset is where the failing record's tag starts.
	Offset int
	Err    error
}

// TagName returns the failing record's tag name, or "unread tag".
func (e *DecodeError) TagName() string {
	if !e.TagRead {
		return "unread tag"
	}
	return e.Tag.String()
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("record %d (%s) at offset %d: %v", e.Index, e.TagName(), e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Engine applies settings streams to a sink. It is not safe for
// concurrent use; callers serialize runs against the same sink.
type Engine struct {
	sink    state.Sink
	logger  Logger
	options Options
}

// New returns an Engine writing to sink. A nil logger discards output.
func New(sink state.Sink, logger Logger, options Options) *Engine {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Engine{sink: sink, logger: logger, options: options}
}

// Run reads records from data until it is exhausted, applying each one as
// soon as it has been decoded and checked.
//
// The first record that cannot be read stops the run with a *DecodeError.
// Records applied before it stay applied. The fallback configuration is
// only materialized when every record was read.
func (e *Engine) Run(data []byte) (*Result, error) {
	target := &scheme.Target{
		Sink:    e.sink,
		Context: &scheme.Context{},
		Env:     e.options.env(),
	}
	result := &Result{Context: target.Context}

	c := qstream.NewCursor(data)
	for !c.AtEnd() {
		offset := c.Offset()
		tag := scheme.Tag(c.ReadUint32())
		if err := c.Err(); err != nil {
			return result, e.fail(result, target, &DecodeError{Offset: offset, Err: fmt.Errorf("reading tag: %w", err)})
		}

		rec, err := scheme.Decode(tag, c, target.Env)
		if err != nil {
			return result, e.fail(result, target, &DecodeError{Tag: tag, TagRead: true, Offset: offset, Err: err})
		}

		scheme.Apply(rec, target)
		result.Records++
		if tag.Discarded() {
			result.Discarded++
			e.logger.Debugf("record %d: %s discarded", result.Records-1, tag)
		} else {
			e.logger.Debugf("record %d: %s applied", result.Records-1, tag)
		}
	}

	result.Warnings = target.Warnings
	for _, w := range result.Warnings {
		e.logger.Warnf("%s", w)
	}

	result.Fallback = scheme.Materialize(target.Context, e.options.base())
	if result.Fallback.Source == scheme.FallbackBlobRejected {
		warning := fmt.Sprintf("fallback config blob rejected, keeping defaults: %v", result.Fallback.BlobErr)
		result.Warnings = append(result.Warnings, warning)
		e.logger.Warnf("%s", warning)
	}
	return result, nil
}

func (e *Engine) fail(result *Result, target *scheme.Target, decodeErr *DecodeError) error {
	result.Warnings = append(target.Warnings, fmt.Sprintf("stopped after %d records", result.Records))
	decodeErr.Index = result.Records
	return decodeErr
}
