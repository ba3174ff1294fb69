package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
)

func TestConfigCommands(t *testing.T) {
	t.Run("InitCreatesConfigFile", func(t *testing.T) {
		setupTestEnvironment(t)

		output, err := runCLI(t, "config", "init", "--format", "json", "--format-version", "1009000", "--no-audit")
		if err != nil {
			t.Fatalf("config init failed: %v\nOutput: %s", err, output)
		}
		if !strings.Contains(output, "Configuration saved") {
			t.Errorf("Expected success message, got: %s", output)
		}

		config, err := configs.LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if config.Output.Format != configs.OutputJSON {
			t.Errorf("Expected json format, got %s", config.Output.Format)
		}
		if config.Migration.FormatVersion != 1009000 {
			t.Errorf("Expected format version 1009000, got %d", config.Migration.FormatVersion)
		}
		if config.Audit.Enabled {
			t.Error("Expected audit to be disabled")
		}
		if len(config.Installation.ID) != 36 {
			t.Errorf("Expected installation UUID, got %q", config.Installation.ID)
		}
	})

	t.Run("InitKeepsExistingConfig", func(t *testing.T) {
		setupTestEnvironment(t)

		if _, err := runCLI(t, "config", "init"); err != nil {
			t.Fatalf("config init failed: %v", err)
		}
		before, err := os.ReadFile(configs.Settings.ConfigPath)
		if err != nil {
			t.Fatalf("Failed to read config: %v", err)
		}

		ResetGlobalState()
		output, err := runCLI(t, "config", "init", "--format", "json")
		if err != nil {
			t.Fatalf("config init failed: %v", err)
		}
		if !strings.Contains(output, "already exists") {
			t.Errorf("Expected existing config warning, got: %s", output)
		}

		after, err := os.ReadFile(configs.Settings.ConfigPath)
		if err != nil {
			t.Fatalf("Failed to read config: %v", err)
		}
		if string(before) != string(after) {
			t.Error("Expected config to be unchanged without --force")
		}
	})

	t.Run("InitRejectsInvalidValues", func(t *testing.T) {
		setupTestEnvironment(t)

		if _, err := runCLI(t, "config", "init", "--environment", "staging"); err == nil {
			t.Fatal("Expected invalid environment to be rejected")
		}
		if _, err := os.Stat(configs.Settings.ConfigPath); !os.IsNotExist(err) {
			t.Error("Expected no config file to be written")
		}
	})

	t.Run("ShowDefaultsAsJSON", func(t *testing.T) {
		setupTestEnvironment(t)

		output, err := runCLI(t, "config", "show", "--json")
		if err != nil {
			t.Fatalf("config show failed: %v", err)
		}

		var parsed configs.Config
		if err := json.Unmarshal([]byte(output), &parsed); err != nil {
			t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
		}
		if parsed.Migration.FormatVersion != configs.DefaultFormatVersion {
			t.Errorf("Expected default format version, got %d", parsed.Migration.FormatVersion)
		}
	})

	t.Run("ShowText", func(t *testing.T) {
		setupTestEnvironment(t)

		output, err := runCLI(t, "config", "show")
		if err != nil {
			t.Fatalf("config show failed: %v", err)
		}
		if !strings.Contains(output, "No configuration file found") || !strings.Contains(output, "Format version:") {
			t.Errorf("Unexpected output: %s", output)
		}
	})
}
