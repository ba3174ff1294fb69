package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tdmigrate configuration",
	Long: `Provides commands for managing the tdmigrate configuration file.

The configuration holds the defaults every command starts from: the
format version streams are assumed to be written with, the cache
threshold, the output format and directory, and whether runs are
recorded in the audit log. Command-line flags always win.

Examples:
  # Create the configuration file
  tdmigrate config init

  # Show the effective configuration
  tdmigrate config show`,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}
