package workflows

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/audit"
	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
)

const sampleLog = `{"ts":"2024-01-10T09:00:00.000000Z","run_id":"r1","op":"migrate","records":10,"outcome":"applied"}
{"ts":"2024-01-12T09:00:00.000000Z","run_id":"r2","op":"migrate","records":3,"outcome":"stopped","failed_index":3,"failed_tag":"ConnectionType","code":"stream_exhausted"}
{"ts":"2024-01-15T09:00:00.000000Z","run_id":"r3","op":"inspect","records":7,"outcome":"applied"}
{"ts":"2024-01-20T09:00:00.000000Z","run_id":"r4","op":"encode","records":2,"outcome":"applied"}
`

func writeLog(t *testing.T) {
	t.Helper()
	path := withAuditPath(t)
	if err := os.WriteFile(path, []byte(sampleLog), 0600); err != nil {
		t.Fatalf("Failed to write audit log: %v", err)
	}
}

func runIDs(entries []audit.Entry) string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.RunID
	}
	return strings.Join(ids, ",")
}

func TestLog_Filters(t *testing.T) {
	cases := []struct {
		name string
		opts LogOptions
		want string
	}{
		{"All", LogOptions{}, "r1,r2,r3,r4"},
		{"Operations", LogOptions{Operations: "migrate, encode"}, "r1,r2,r4"},
		{"Outcome", LogOptions{Outcomes: "STOPPED"}, "r2"},
		{"RunID", LogOptions{RunID: "r3"}, "r3"},
		{"Since", LogOptions{Since: "2024-01-12"}, "r2,r3,r4"},
		{"Until", LogOptions{Until: "2024-01-15"}, "r1,r2,r3"},
		{"Limit", LogOptions{Limit: 2}, "r3,r4"},
		{"ReverseLimit", LogOptions{Reverse: true, Limit: 2}, "r4,r3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			writeLog(t)

			result, err := Log(context.Background(), tc.opts)
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if result.TotalEntriesBeforeFilter != 4 {
				t.Errorf("Expected 4 entries before filter, got %d", result.TotalEntriesBeforeFilter)
			}
			if got := runIDs(result.Entries); got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestLog_Errors(t *testing.T) {
	t.Run("MissingLog", func(t *testing.T) {
		withAuditPath(t)
		_, err := Log(context.Background(), LogOptions{})
		if !errors.Is(err, kerrors.ErrNoAuditLog) {
			t.Fatalf("Expected ErrNoAuditLog, got %v", err)
		}
	})

	t.Run("InvalidDate", func(t *testing.T) {
		writeLog(t)
		_, err := Log(context.Background(), LogOptions{Since: "12/01/2024"})
		if !errors.Is(err, kerrors.ErrInvalidDateFormat) {
			t.Fatalf("Expected ErrInvalidDateFormat, got %v", err)
		}
	})
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatDate("2024-01-15T10:30:00.000000Z"); got != "2024-01-15" {
		t.Errorf("FormatDate() = %q", got)
	}
	if got := FormatDateTime("2024-01-15T10:30:00.000000Z"); got != "2024-01-15 10:30:00" {
		t.Errorf("FormatDateTime() = %q", got)
	}
	if got := FormatDate("garbage"); got != "garbage" {
		t.Errorf("FormatDate() = %q", got)
	}

	index := 3
	stopped := audit.Entry{Input: "settingss", Records: 3, FailedIndex: &index, FailedTag: "ConnectionType", Code: "stream_exhausted"}
	if got := FormatDetails(stopped); got != "settingss, 3 records, stopped at record 3 (ConnectionType): stream_exhausted" {
		t.Errorf("FormatDetails() = %q", got)
	}
	if got := FormatDetailsOneline(stopped); got != "3 records, stopped at ConnectionType" {
		t.Errorf("FormatDetailsOneline() = %q", got)
	}
	if got := FormatDetailsOneline(audit.Entry{Records: 1}); got != "1 record" {
		t.Errorf("FormatDetailsOneline() = %q", got)
	}

	truncated := audit.Entry{Records: 2, FailedIndex: &index, Code: "stream_exhausted"}
	if got := FormatDetailsOneline(truncated); got != "2 records, stopped at unread tag" {
		t.Errorf("FormatDetailsOneline() = %q", got)
	}
}
