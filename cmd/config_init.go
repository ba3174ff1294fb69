package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
	"github.com/PolarWolf314/tdmigrate/internal/ui"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
	"github.com/spf13/cobra"
)

var (
	configInitFormatVersion int32
	configInitFormat        string
	configInitOutputDir     string
	configInitEnvironment   string
	configInitNoAudit       bool
	configInitForce         bool
)

func init() {
	configInitCmd.Flags().Int32Var(&configInitFormatVersion, "format-version", 0, "default container format version")
	configInitCmd.Flags().StringVar(&configInitFormat, "format", "", "default document format: toml or json")
	configInitCmd.Flags().StringVar(&configInitOutputDir, "output-dir", "", "default directory for migrated documents")
	configInitCmd.Flags().StringVar(&configInitEnvironment, "environment", "", "network environment: production or test")
	configInitCmd.Flags().BoolVar(&configInitNoAudit, "no-audit", false, "disable the audit log")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing configuration")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitFormatVersion = 0
	configInitFormat = ""
	configInitOutputDir = ""
	configInitEnvironment = ""
	configInitNoAudit = false
	configInitForce = false
}

// promptForInput prompts the user for input with an optional default value.
func promptForInput(reader *bufio.Reader, prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" && defaultValue != "" {
		return defaultValue, nil
	}
	return input, nil
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file",
	Long: `Creates the tdmigrate configuration file with an installation id.

Values not given as flags are prompted for when stdin is a terminal and
take their defaults otherwise. An existing configuration is left alone
unless --force is given.

Examples:
  # Interactive setup
  tdmigrate config init

  # Non-interactive setup
  tdmigrate config init --format json --output-dir ~/migrated

  # Recreate with defaults
  tdmigrate config init --force`,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config init command")

	path := configs.Settings.ConfigPath
	if _, err := os.Stat(path); err == nil && !configInitForce {
		fmt.Println(ui.Warned("Configuration already exists at " + ui.Path.Sprint(path)))
		fmt.Println(ui.Hint("Run " + ui.Code.Sprint("tdmigrate config show") + " to see it, or use " + ui.Flag.Sprint("--force") + " to recreate it"))
		return nil
	}

	config := configs.DefaultConfig()
	config.Installation.ID = configs.GenerateInstallationID()

	if err := applyConfigInitValues(cmd, config); err != nil {
		fmt.Println(ui.Failed(err.Error()))
		return err
	}

	if err := config.Validate(); err != nil {
		fmt.Println(ui.Failed(err.Error()))
		return err
	}

	if err := configs.SaveConfig(config); err != nil {
		return Logger.ErrorfAndReturn("Failed to save config: %w", err)
	}

	fmt.Println(ui.Done("Configuration saved to " + ui.Path.Sprint(path)))
	fmt.Println()
	printConfigText(config)
	return nil
}

// applyConfigInitValues fills config from flags, prompting for the rest
// when stdin is interactive.
func applyConfigInitValues(cmd *cobra.Command, config *configs.Config) error {
	interactive := utils.IsTerminal()
	reader := bufio.NewReader(os.Stdin)

	ask := func(flag, prompt, current string) (string, bool, error) {
		if cmd.Flags().Changed(flag) || !interactive {
			return "", false, nil
		}
		value, err := promptForInput(reader, prompt, current)
		return value, true, err
	}

	if cmd.Flags().Changed("format-version") {
		config.Migration.FormatVersion = configInitFormatVersion
	} else if value, ok, err := ask("format-version", "Format version", strconv.Itoa(int(config.Migration.FormatVersion))); err != nil {
		return err
	} else if ok {
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid format version %q", value)
		}
		config.Migration.FormatVersion = int32(n)
	}

	format := configInitFormat
	if value, ok, err := ask("format", "Output format (toml/json)", string(config.Output.Format)); err != nil {
		return err
	} else if ok {
		format = value
	}
	if format != "" {
		parsed, err := configs.ParseOutputFormat(format)
		if err != nil {
			return err
		}
		config.Output.Format = parsed
	}

	config.Output.Directory = configInitOutputDir
	if value, ok, err := ask("output-dir", "Output directory (empty: next to each input)", ""); err != nil {
		return err
	} else if ok {
		config.Output.Directory = value
	}

	if configInitEnvironment != "" {
		config.Migration.Environment = configInitEnvironment
	}
	config.Audit.Enabled = !configInitNoAudit
	return nil
}
