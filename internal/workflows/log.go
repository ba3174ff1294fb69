package workflows

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/tdmigrate/internal/audit"
	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Outcomes filters entries by outcome (comma-separated).
	Outcomes string

	// RunID keeps only the entries of one run.
	RunID string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrNoAuditLog if no audit log exists.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logPath := audit.LogPath()
	if logPath == "" {
		return nil, kerrors.ErrNoAuditLog
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, kerrors.ErrNoAuditLog
	}
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	entries, err := audit.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing audit log: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.Operations != "" {
		filtered = filterByField(filtered, splitList(opts.Operations), func(e audit.Entry) string { return e.Operation })
	}

	if opts.Outcomes != "" {
		filtered = filterByField(filtered, splitList(opts.Outcomes), func(e audit.Entry) string { return e.Outcome })
	}

	if opts.RunID != "" {
		filtered = filterByField(filtered, []string{opts.RunID}, func(e audit.Entry) string { return e.RunID })
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filtered = filterTime(filtered, func(t time.Time) bool { return !t.Before(sinceTime) })
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterTime(filtered, func(t time.Time) bool { return !t.After(untilTime) })
	}

	if opts.Reverse {
		slices.Reverse(filtered)
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// filterByField keeps entries whose field matches one of values
// (case-insensitive).
func filterByField(entries []audit.Entry, values []string, field func(audit.Entry) string) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		for _, v := range values {
			if strings.EqualFold(field(e), v) {
				result = append(result, e)
				break
			}
		}
	}
	return result
}

// filterTime keeps entries whose timestamp satisfies keep. Entries with an
// unreadable timestamp are dropped.
func filterTime(entries []audit.Entry, keep func(time.Time) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := parseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if keep(t) {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(audit.TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e audit.Entry) string {
	var parts []string
	if e.Input != "" {
		parts = append(parts, e.Input)
	}
	parts = append(parts, utils.Plural(e.Records, "record"))
	if e.Discarded > 0 {
		parts = append(parts, fmt.Sprintf("%d discarded", e.Discarded))
	}
	if e.Warnings > 0 {
		parts = append(parts, utils.Plural(e.Warnings, "warning"))
	}
	if e.Output != "" {
		parts = append(parts, "-> "+e.Output)
	}
	if e.FailedIndex != nil {
		parts = append(parts, fmt.Sprintf("stopped at record %d (%s): %s", *e.FailedIndex, failedTag(e), e.Code))
	} else if e.Code != "" {
		parts = append(parts, e.Code)
	}
	return strings.Join(parts, ", ")
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e audit.Entry) string {
	if e.FailedIndex != nil {
		return fmt.Sprintf("%s, stopped at %s", utils.Plural(e.Records, "record"), failedTag(e))
	}
	if e.Code != "" {
		return e.Code
	}
	return utils.Plural(e.Records, "record")
}

// failedTag is empty in the log when the stream ended inside a tag.
func failedTag(e audit.Entry) string {
	if e.FailedTag == "" {
		return "unread tag"
	}
	return e.FailedTag
}
