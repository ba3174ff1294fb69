package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/scheme"
	"github.com/PolarWolf314/tdmigrate/internal/state"
)

func TestInspectCommand(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		input := filepath.Join(tempDir, "settingss")
		writeTestStream(t, input,
			scheme.NewInt32Record(scheme.TagAutoStart, 1),
			&scheme.WindowPositionRecord{WindowPosition: state.WindowPosition{W: 800, H: 600}},
		)

		output, err := runCLI(t, "inspect", input)
		if err != nil {
			t.Fatalf("inspect failed: %v\nOutput: %s", err, output)
		}
		for _, want := range []string{"2 records", "AutoStart", "WindowPosition", `"w":800`} {
			if !strings.Contains(output, want) {
				t.Errorf("Expected %q in output, got: %s", want, output)
			}
		}
	})

	t.Run("JSON", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)
		input := filepath.Join(tempDir, "settingss")
		writeTestStream(t, input,
			scheme.NewInt32Record(scheme.TagAutoStart, 1),
			scheme.NewInt32Record(scheme.TagSendKeyOld, 9),
		)

		output, err := runCLI(t, "inspect", input, "--json")
		if err != nil {
			t.Fatalf("inspect failed: %v\nOutput: %s", err, output)
		}

		var parsed struct {
			Size    int `json:"size"`
			Entries []struct {
				Tag    string `json:"tag"`
				Offset int    `json:"offset"`
			} `json:"entries"`
			Error *struct {
				Index int    `json:"index"`
				Tag   string `json:"tag"`
			} `json:"error"`
		}
		if err := json.Unmarshal([]byte(output), &parsed); err != nil {
			t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
		}

		if parsed.Size != 16 {
			t.Errorf("Expected size 16, got %d", parsed.Size)
		}
		if len(parsed.Entries) != 1 || parsed.Entries[0].Tag != "AutoStart" {
			t.Errorf("Unexpected entries: %+v", parsed.Entries)
		}
		if parsed.Error == nil || parsed.Error.Index != 1 || parsed.Error.Tag != "SendKeyOld" {
			t.Errorf("Unexpected error: %+v", parsed.Error)
		}
	})

	t.Run("MissingInput", func(t *testing.T) {
		tempDir := setupTestEnvironment(t)

		_, err := runCLI(t, "inspect", filepath.Join(tempDir, "nope"))
		if err == nil {
			t.Fatal("Expected error for missing input")
		}
	})
}

func TestTagsCommand(t *testing.T) {
	t.Run("Filter", func(t *testing.T) {
		setupTestEnvironment(t)

		output, err := runCLI(t, "tags", "emoji")
		if err != nil {
			t.Fatalf("tags failed: %v", err)
		}
		if !strings.Contains(output, "RecentEmoji") {
			t.Errorf("Expected RecentEmoji in output, got: %s", output)
		}
		if strings.Contains(output, "AutoStart") {
			t.Errorf("Expected filter to exclude AutoStart, got: %s", output)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		setupTestEnvironment(t)

		output, err := runCLI(t, "tags", "--json")
		if err != nil {
			t.Fatalf("tags failed: %v", err)
		}
		var tags []map[string]any
		if err := json.Unmarshal([]byte(output), &tags); err != nil {
			t.Fatalf("Failed to parse JSON output: %v", err)
		}
		if len(tags) != len(scheme.AllTags()) {
			t.Errorf("Expected %d tags, got %d", len(scheme.AllTags()), len(tags))
		}
	})
}
