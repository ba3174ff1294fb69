package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
	"github.com/PolarWolf314/tdmigrate/internal/ui"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the effective tdmigrate configuration: the configuration file
on top of the built-in defaults.

Examples:
  tdmigrate config show
  tdmigrate config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		config, err := loadConfig()
		if err != nil {
			fmt.Println(ui.Failed(err.Error()))
			return err
		}

		if configShowJSON {
			output, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		path := configs.Settings.ConfigPath
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println(ui.Warned("No configuration file found, showing defaults"))
			fmt.Println(ui.Hint("Run " + ui.Code.Sprint("tdmigrate config init") + " to create one"))
			fmt.Println()
		} else {
			fmt.Println(ui.Info.Sprint("Configuration") + " (" + ui.Path.Sprint(path) + "):")
			fmt.Println()
		}

		printConfigText(config)
		return nil
	},
}

// printConfigText outputs config in human-readable format.
func printConfigText(config *configs.Config) {
	outputDir := config.Output.Directory
	if outputDir == "" {
		outputDir = "next to each input"
	}
	installation := config.Installation.ID
	if installation == "" {
		installation = "none"
	}

	fmt.Printf("  %-22s %s\n", "Installation ID:", ui.Warning.Sprint(installation))
	fmt.Printf("  %-22s %s\n", "Format version:", ui.Success.Sprint(config.Migration.FormatVersion))
	fmt.Printf("  %-22s %s\n", "Cache max data size:", ui.Success.Sprint(cacheSizeString(config.Migration.CacheMaxDataSize)))
	fmt.Printf("  %-22s %s\n", "Custom day background:", ui.Success.Sprint(config.Migration.CustomDayBackground))
	fmt.Printf("  %-22s %s\n", "Environment:", ui.Success.Sprint(config.Migration.Environment))
	fmt.Printf("  %-22s %s\n", "Output format:", ui.Success.Sprint(config.Output.Format))
	fmt.Printf("  %-22s %s\n", "Output directory:", ui.Success.Sprint(outputDir))
	fmt.Printf("  %-22s %s\n", "Audit log:", ui.Success.Sprint(config.Audit.Enabled))
	if config.Audit.Enabled {
		fmt.Printf("  %-22s %s\n", "Audit log path:", ui.Path.Sprint(configs.Settings.AuditPath))
	}
}

func cacheSizeString(size int64) string {
	if size <= 0 {
		return "built-in"
	}
	return fmt.Sprintf("%d bytes", size)
}
