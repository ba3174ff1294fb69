package configs

import (
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/google/uuid"
)

// DefaultFormatVersion is assumed for streams whose container version is
// not given on the command line.
const DefaultFormatVersion int32 = 2000000

// OutputFormat is the encoding of a migrated state document.
type OutputFormat string

const (
	OutputTOML OutputFormat = "toml"
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat accepts "toml" or "json" in any case.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTOML, OutputJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", kerrors.ErrUnsupportedOutput, s)
}

type Config struct {
	Installation Installation    `toml:"installation"`
	Migration    MigrationConfig `toml:"migration"`
	Output       OutputConfig    `toml:"output"`
	Audit        AuditConfig     `toml:"audit"`
}

type Installation struct {
	ID string `toml:"id"`
}

type MigrationConfig struct {
	FormatVersion       int32  `toml:"format_version"`
	CacheMaxDataSize    int64  `toml:"cache_max_data_size"`
	CustomDayBackground bool   `toml:"custom_day_background"`
	Environment         string `toml:"environment"`
}

type OutputConfig struct {
	Format    OutputFormat `toml:"format"`
	Directory string       `toml:"directory"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Migration: MigrationConfig{
			FormatVersion: DefaultFormatVersion,
			Environment:   mtp.EnvironmentProduction.String(),
		},
		Output: OutputConfig{Format: OutputTOML},
		Audit:  AuditConfig{Enabled: true},
	}
}

// Validate checks every value a command would act on.
func (c *Config) Validate() error {
	if c.Migration.FormatVersion <= 0 {
		return fmt.Errorf("%w: %d", kerrors.ErrInvalidFormatVersion, c.Migration.FormatVersion)
	}
	if c.Migration.CacheMaxDataSize < 0 {
		return fmt.Errorf("%w: negative cache_max_data_size %d", kerrors.ErrInvalidConfig, c.Migration.CacheMaxDataSize)
	}
	if _, err := c.MtpEnvironment(); err != nil {
		return err
	}
	if _, err := ParseOutputFormat(string(c.Output.Format)); err != nil {
		return err
	}
	return nil
}

// MtpEnvironment returns the network environment the fallback
// configuration is built for.
func (c *Config) MtpEnvironment() (mtp.Environment, error) {
	switch strings.ToLower(c.Migration.Environment) {
	case "", "production":
		return mtp.EnvironmentProduction, nil
	case "test":
		return mtp.EnvironmentTest, nil
	}
	return 0, fmt.Errorf("%w: unknown environment %q", kerrors.ErrInvalidConfig, c.Migration.Environment)
}

// LoadConfig loads the configuration from the default path.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(Settings.ConfigPath)
}

// LoadConfigFrom loads the configuration at path on top of the defaults.
// A missing file yields the defaults.
func LoadConfigFrom(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	unknown, err := LoadTOML(path, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %s", kerrors.ErrInvalidConfig, strings.Join(unknown, ", "))
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the default path.
func SaveConfig(config *Config) error {
	if err := SaveTOML(Settings.ConfigPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// GenerateInstallationID generates a new id for this installation.
func GenerateInstallationID() string {
	return uuid.New().String()
}
