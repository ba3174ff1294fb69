package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/mtp"
)

func withConfigPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tdmigrate", "config.toml")
	oldPath := Settings.ConfigPath
	Settings.ConfigPath = path
	t.Cleanup(func() {
		Settings.ConfigPath = oldPath
	})
	return path
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestGenerateInstallationID(t *testing.T) {
	id := GenerateInstallationID()
	if len(id) != 36 {
		t.Fatalf("Expected UUID length 36, got %d", len(id))
	}
}

func TestLoadConfigNonExistent(t *testing.T) {
	withConfigPath(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Migration.FormatVersion != DefaultFormatVersion {
		t.Errorf("Expected default format version, got %d", config.Migration.FormatVersion)
	}
	if config.Output.Format != OutputTOML {
		t.Errorf("Expected toml output, got %q", config.Output.Format)
	}
	if !config.Audit.Enabled {
		t.Error("Expected audit to be enabled by default")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	withConfigPath(t)

	config := DefaultConfig()
	config.Installation.ID = "install-1"
	config.Migration.FormatVersion = 1009000
	config.Migration.CacheMaxDataSize = 4096
	config.Migration.Environment = "test"
	config.Output.Format = OutputJSON
	config.Output.Directory = "/tmp/out"
	config.Audit.Enabled = false

	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", *config, *loaded)
	}

	env, err := loaded.MtpEnvironment()
	if err != nil {
		t.Fatalf("MtpEnvironment failed: %v", err)
	}
	if env != mtp.EnvironmentTest {
		t.Errorf("Expected test environment, got %s", env)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := withConfigPath(t)
	writeConfig(t, path, "[output]\nformat = \"json\"\n")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Output.Format != OutputJSON {
		t.Errorf("Expected json output, got %q", config.Output.Format)
	}
	if config.Migration.FormatVersion != DefaultFormatVersion {
		t.Errorf("Expected default format version, got %d", config.Migration.FormatVersion)
	}
	if !config.Audit.Enabled {
		t.Error("Expected audit default to survive a partial file")
	}
}

func TestLoadConfigRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"MalformedTOML", "[migration\n", kerrors.ErrInvalidConfig},
		{"UnknownKey", "[migration]\nformat_versoin = 1\n", kerrors.ErrInvalidConfig},
		{"ZeroFormatVersion", "[migration]\nformat_version = 0\n", kerrors.ErrInvalidFormatVersion},
		{"NegativeCacheSize", "[migration]\ncache_max_data_size = -1\n", kerrors.ErrInvalidConfig},
		{"UnknownEnvironment", "[migration]\nenvironment = \"staging\"\n", kerrors.ErrInvalidConfig},
		{"UnsupportedOutput", "[output]\nformat = \"yaml\"\n", kerrors.ErrUnsupportedOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := withConfigPath(t)
			writeConfig(t, path, tt.content)

			_, err := LoadConfig()
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"toml", OutputTOML, false},
		{" JSON ", OutputJSON, false},
		{"yaml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
