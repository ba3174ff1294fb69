package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/scheme"
)

func TestLogCommand(t *testing.T) {
	t.Run("NoAuditLog", func(t *testing.T) {
		setupTestEnvironment(t)

		output, err := runCLI(t, "log")
		if err != nil {
			t.Fatalf("log failed: %v", err)
		}
		if !strings.Contains(output, "No audit log found") {
			t.Errorf("Expected missing log message, got: %s", output)
		}
	})

	t.Run("ShowsRuns", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		input := filepath.Join(tempDir, "settingss")
		writeTestStream(t, input, scheme.NewInt32Record(scheme.TagAutoStart, 1))

		if output, err := runCLI(t, "migrate", input); err != nil {
			t.Fatalf("migrate failed: %v\nOutput: %s", err, output)
		}
		ResetGlobalState()
		if output, err := runCLI(t, "inspect", input); err != nil {
			t.Fatalf("inspect failed: %v\nOutput: %s", err, output)
		}
		ResetGlobalState()

		output, err := runCLI(t, "log", "--operation", "migrate", "--json")
		if err != nil {
			t.Fatalf("log failed: %v", err)
		}

		var entries []map[string]any
		if err := json.Unmarshal([]byte(output), &entries); err != nil {
			t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
		}
		if len(entries) != 1 {
			t.Fatalf("Expected 1 migrate entry, got %d", len(entries))
		}
		if entries[0]["outcome"] != "applied" {
			t.Errorf("Expected applied outcome, got %v", entries[0]["outcome"])
		}

		ResetGlobalState()
		output, err = runCLI(t, "log", "--oneline")
		if err != nil {
			t.Fatalf("log failed: %v", err)
		}
		if lines := strings.Split(strings.TrimSpace(output), "\n"); len(lines) != 2 {
			t.Errorf("Expected 2 lines, got %d: %s", len(lines), output)
		}
	})

	t.Run("InvalidDate", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		input := filepath.Join(tempDir, "settingss")
		writeTestStream(t, input, scheme.NewInt32Record(scheme.TagAutoStart, 1))
		if _, err := runCLI(t, "migrate", input); err != nil {
			t.Fatalf("migrate failed: %v", err)
		}
		ResetGlobalState()

		output, err := runCLI(t, "log", "--since", "yesterday")
		if err != nil {
			t.Fatalf("Expected invalid date to be reported without failing, got %v", err)
		}
		if !strings.Contains(output, "YYYY-MM-DD") {
			t.Errorf("Expected date format hint, got: %s", output)
		}
	})
}
