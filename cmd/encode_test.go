package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeCommand(t *testing.T) {
	t.Run("WritesStream", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		script := filepath.Join(tempDir, "records.toml")
		content := "[[record]]\ntag = \"AutoStart\"\n[record.fields]\nvalue = 1\n"
		if err := os.WriteFile(script, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write script: %v", err)
		}
		stream := filepath.Join(tempDir, "settingss")

		output, err := runCLI(t, "encode", script, "-o", stream)
		if err != nil {
			t.Fatalf("encode failed: %v\nOutput: %s", err, output)
		}
		if !strings.Contains(output, "Wrote 1 record (8 bytes)") {
			t.Errorf("Expected summary, got: %s", output)
		}

		output, err = runCLI(t, "inspect", stream)
		if err != nil {
			t.Fatalf("inspect failed: %v\nOutput: %s", err, output)
		}
		if !strings.Contains(output, "AutoStart") {
			t.Errorf("Expected AutoStart in inspect output, got: %s", output)
		}
	})

	t.Run("RejectsInvalidRecord", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		script := filepath.Join(tempDir, "records.toml")
		content := "[[record]]\ntag = \"SendKeyOld\"\n[record.fields]\nvalue = 9\n"
		if err := os.WriteFile(script, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write script: %v", err)
		}
		stream := filepath.Join(tempDir, "settingss")

		if _, err := runCLI(t, "encode", script, "-o", stream); err == nil {
			t.Fatal("Expected invalid record to be rejected")
		}

		ResetGlobalState()
		if _, err := runCLI(t, "encode", script, "-o", stream, "--allow-invalid"); err != nil {
			t.Fatalf("Expected --allow-invalid to succeed, got %v", err)
		}
	})
}
