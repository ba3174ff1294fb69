package cmd

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/audit"
	"github.com/PolarWolf314/tdmigrate/internal/scheme"
)

func TestMigrateCommand(t *testing.T) {
	t.Run("WritesDocument", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		input := filepath.Join(tempDir, "tdata", "settingss")
		writeTestStream(t, input,
			scheme.NewInt32Record(scheme.TagAutoStart, 1),
			scheme.NewInt32Record(scheme.TagEmojiTabOld, 1),
		)

		output, err := runCLI(t, "migrate", input)
		if err != nil {
			t.Fatalf("migrate failed: %v\nOutput: %s", err, output)
		}

		if !strings.Contains(output, "2 records, 1 discarded, fallback from fields") {
			t.Errorf("Expected record summary, got: %s", output)
		}
		if _, err := os.Stat(input + ".toml"); err != nil {
			t.Errorf("Expected document next to input: %v", err)
		}

		entries, err := audit.ReadEntries()
		if err != nil {
			t.Fatalf("ReadEntries failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Outcome != audit.OutcomeApplied {
			t.Errorf("Expected one applied audit entry, got %+v", entries)
		}
	})

	t.Run("FlagsOverrideDefaults", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		input := filepath.Join(tempDir, "settings0")
		writeTestStream(t, input, scheme.NewInt32Record(scheme.TagAutoStart, 1))
		outDir := filepath.Join(tempDir, "out")

		output, err := runCLI(t, "migrate", input, "--format", "json", "--output-dir", outDir, "--no-audit")
		if err != nil {
			t.Fatalf("migrate failed: %v\nOutput: %s", err, output)
		}

		if _, err := os.Stat(filepath.Join(outDir, "settings0.json")); err != nil {
			t.Errorf("Expected JSON document in output dir: %v", err)
		}
		if _, err := os.Stat(filepath.Join(tempDir, "data", "audit.jsonl")); !os.IsNotExist(err) {
			t.Error("Expected no audit log with --no-audit")
		}
	})

	t.Run("BackupsIntoOutputDirTwice", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		backups := filepath.Join(tempDir, "backups")
		writeTestStream(t, filepath.Join(backups, "2023", "tdata", "settingss"), scheme.NewInt32Record(scheme.TagAutoStart, 1))
		writeTestStream(t, filepath.Join(backups, "2024", "tdata", "settingss"), scheme.NewInt32Record(scheme.TagAutoStart, 0))
		outDir := filepath.Join(tempDir, "migrated")

		for run := 1; run <= 2; run++ {
			output, err := runCLI(t, "migrate", backups, "--output-dir", outDir, "--no-audit")
			if err != nil {
				t.Fatalf("migrate run %d failed: %v\nOutput: %s", run, err, output)
			}
			if !strings.Contains(output, "2 streams migrated") {
				t.Errorf("Run %d: expected both streams migrated, got: %s", run, output)
			}
		}

		for _, year := range []string{"2023", "2024"} {
			if _, err := os.Stat(filepath.Join(outDir, year, "tdata", "settingss.toml")); err != nil {
				t.Errorf("Expected a document for the %s backup: %v", year, err)
			}
		}
	})

	t.Run("RerunNextToInputs", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		tdata := filepath.Join(tempDir, "tdata")
		writeTestStream(t, filepath.Join(tdata, "settingss"), scheme.NewInt32Record(scheme.TagAutoStart, 1))

		for run := 1; run <= 2; run++ {
			output, err := runCLI(t, "migrate", tdata, "--no-audit")
			if err != nil {
				t.Fatalf("migrate run %d failed: %v\nOutput: %s", run, err, output)
			}
		}
	})

	t.Run("ReportsStoppedStream", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		input := filepath.Join(tempDir, "settingss")

		data := binary.BigEndian.AppendUint32(nil, uint32(scheme.TagAutoStart))
		data = binary.BigEndian.AppendUint32(data, 1)
		data = binary.BigEndian.AppendUint32(data, uint32(scheme.TagWindowPosition))
		data = binary.BigEndian.AppendUint32(data, 10)
		if err := os.WriteFile(input, data, 0644); err != nil {
			t.Fatalf("Failed to write stream: %v", err)
		}

		output, err := runCLI(t, "migrate", input)
		if err == nil {
			t.Fatal("Expected migrate to fail")
		}
		if !strings.Contains(err.Error(), "1 of 1 streams failed") {
			t.Errorf("Unexpected error: %v", err)
		}
		if !strings.Contains(output, "stopped at record 1") || !strings.Contains(output, "WindowPosition") {
			t.Errorf("Expected stop report, got: %s", output)
		}
		if _, err := os.Stat(input + ".toml"); !os.IsNotExist(err) {
			t.Error("Expected no document for stopped stream")
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		input := filepath.Join(tempDir, "settingss")
		writeTestStream(t, input, scheme.NewInt32Record(scheme.TagAutoStart, 1))

		_, err := runCLI(t, "migrate", input, "--format", "yaml")
		if err == nil {
			t.Fatal("Expected error for unsupported format")
		}
	})

	t.Run("NoInputs", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)

		output, err := runCLI(t, "migrate", filepath.Join(tempDir, "*.missing"))
		if err == nil {
			t.Fatal("Expected error when nothing matches")
		}
		if !strings.Contains(output, "no matching input files found") {
			t.Errorf("Expected no inputs message, got: %s", output)
		}
	})
}
