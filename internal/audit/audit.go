package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
)

// TimestampFormat is RFC3339 with microseconds, always UTC.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Outcomes recorded for a run.
const (
	OutcomeApplied = "applied"
	OutcomeStopped = "stopped"
	OutcomeFailed  = "failed"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	RunID     string `json:"run_id"` // Shared by every entry of one command.
	User      string `json:"user,omitempty"`
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"` // migrate, inspect or encode.

	Input         string `json:"input,omitempty"`
	Output        string `json:"output,omitempty"`
	FormatVersion int32  `json:"format_version,omitempty"`
	Records       int    `json:"records"`
	Discarded     int    `json:"discarded,omitempty"`
	Warnings      int    `json:"warnings,omitempty"`
	Fallback      string `json:"fallback,omitempty"` // fields, blob or blob_rejected.
	Outcome       string `json:"outcome"`

	// Set when the stream stopped early.
	FailedIndex *int   `json:"failed_index,omitempty"`
	FailedTag   string `json:"failed_tag,omitempty"`
	Offset      *int   `json:"offset,omitempty"`
	Code        string `json:"code,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewRunID returns a fresh run id.
func NewRunID() string {
	return uuid.New().String()
}

// NewEntry returns an entry for op with the run id, user and host filled
// in.
func NewEntry(runID, op string) Entry {
	return Entry{
		RunID:     runID,
		User:      configs.Settings.Username,
		Host:      configs.Settings.Hostname,
		Operation: op,
	}
}

// Log appends an entry to the audit log.
// Operations should not fail just because audit logging failed, so errors
// are dropped.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return configs.Settings.AuditPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines, such as a partially written last line, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
