package cmd

import (
	"github.com/PolarWolf314/tdmigrate/internal/configs"
	logger "github.com/PolarWolf314/tdmigrate/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// Register attaches the persistent flags and every sub-command to root.
func Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	root.AddCommand(migrateCmd)
	root.AddCommand(inspectCmd)
	root.AddCommand(tagsCmd)
	root.AddCommand(encodeCmd)
	root.AddCommand(logCmd)
	root.AddCommand(ConfigCmd)
}

// loadConfig loads the tool configuration, falling back to the defaults
// when no file exists.
func loadConfig() (*configs.Config, error) {
	Logger.Debugf("Loading config from %s", configs.Settings.ConfigPath)
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, Logger.ErrorfAndReturn("Failed to load config: %w", err)
	}
	return config, nil
}

// formatVersionFlag returns the flag value when it was given, otherwise the
// configured default.
func formatVersionFlag(cmd *cobra.Command, flagValue int32, config *configs.Config) int32 {
	if cmd.Flags().Changed("format-version") {
		return flagValue
	}
	return config.Migration.FormatVersion
}

func cacheSizeFlag(cmd *cobra.Command, flagValue int64, config *configs.Config) int64 {
	if cmd.Flags().Changed("cache-max-size") {
		return flagValue
	}
	return config.Migration.CacheMaxDataSize
}

func customBackgroundFlag(cmd *cobra.Command, flagValue bool, config *configs.Config) bool {
	if cmd.Flags().Changed("custom-background") {
		return flagValue
	}
	return config.Migration.CustomDayBackground
}

// addStreamFlags registers the flags that change how a stream is read.
func addStreamFlags(flags *pflag.FlagSet, formatVersion *int32, cacheSize *int64, customBackground *bool) {
	flags.Int32Var(formatVersion, "format-version", configs.DefaultFormatVersion, "container format version the stream was written with")
	flags.Int64Var(cacheSize, "cache-max-size", 0, "largest cache entry size in bytes (0 uses the built-in threshold)")
	flags.BoolVar(customBackground, "custom-background", false, "a custom day background exists next to the settings file")
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetMigrateCommandState()
	resetInspectCommandState()
	resetTagsCommandState()
	resetEncodeCommandState()
	resetLogCommandState()
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState(migrateCmd, inspectCmd, tagsCmd, encodeCmd, logCmd, ConfigCmd)
}

// resetCobraFlagState clears the Changed marks left by a previous run.
func resetCobraFlagState(commands ...*cobra.Command) {
	for _, c := range commands {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
		for _, sub := range c.Commands() {
			resetCobraFlagState(sub)
		}
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
