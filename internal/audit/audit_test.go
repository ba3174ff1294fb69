package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
)

func withAuditPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tdmigrate", "audit.jsonl")
	oldPath := configs.Settings.AuditPath
	configs.Settings.AuditPath = path
	t.Cleanup(func() {
		configs.Settings.AuditPath = oldPath
	})
	return path
}

func TestLog_CreatesFile(t *testing.T) {
	path := withAuditPath(t)

	Log(NewEntry(NewRunID(), "migrate"))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	withAuditPath(t)
	runID := NewRunID()

	index := 3
	first := NewEntry(runID, "migrate")
	first.Input = "tdata/settingss"
	first.Records = 12
	first.Outcome = OutcomeApplied
	Log(first)

	second := NewEntry(runID, "migrate")
	second.Input = "tdata/settings0"
	second.Records = 3
	second.Outcome = OutcomeStopped
	second.FailedIndex = &index
	second.FailedTag = "ConnectionType"
	second.Code = "stream_exhausted"
	Log(second)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	if entries[0].RunID != runID || entries[1].RunID != runID {
		t.Errorf("Expected both entries to carry run id %s", runID)
	}
	if entries[0].Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
	if entries[1].FailedIndex == nil || *entries[1].FailedIndex != 3 {
		t.Errorf("Expected failed index 3, got %v", entries[1].FailedIndex)
	}
	if entries[1].Outcome != OutcomeStopped {
		t.Errorf("Expected outcome %q, got %q", OutcomeStopped, entries[1].Outcome)
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	withAuditPath(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := strings.Join([]string{
		`{"ts":"2024-01-15T10:30:00.000000Z","run_id":"a","op":"migrate","records":1,"outcome":"applied"}`,
		`not json`,
		``,
		`{"ts":"2024-01-15T10:31:00.000000Z","run_id":"a","op":"inspect","records":2,"outcome":"applied"}`,
		`{"ts":"2024-01-15T10:32:00.0`,
	}, "\n")

	entries, err := ParseEntries([]byte(data))
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Operation != "inspect" {
		t.Errorf("Expected inspect, got %q", entries[1].Operation)
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if len(a) != 36 {
		t.Errorf("Expected UUID length 36, got %d", len(a))
	}
	if a == b {
		t.Error("Expected distinct run ids")
	}
}
