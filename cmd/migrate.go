package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
	"github.com/PolarWolf314/tdmigrate/internal/migrate"
	"github.com/PolarWolf314/tdmigrate/internal/state"
	"github.com/PolarWolf314/tdmigrate/internal/ui"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
	"github.com/PolarWolf314/tdmigrate/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	migrateFormatVersion    int32
	migrateCacheSize        int64
	migrateCustomBackground bool
	migrateOutputDir        string
	migrateFormat           string
	migrateEnvironment      string
	migrateScale            int
	migrateNight            bool
	migrateDryRun           bool
	migrateNoAudit          bool
)

func init() {
	addStreamFlags(migrateCmd.Flags(), &migrateFormatVersion, &migrateCacheSize, &migrateCustomBackground)
	migrateCmd.Flags().StringVarP(&migrateOutputDir, "output-dir", "o", "", "directory for migrated documents (default: next to each input)")
	migrateCmd.Flags().StringVarP(&migrateFormat, "format", "f", "", "document format: toml or json")
	migrateCmd.Flags().StringVar(&migrateEnvironment, "environment", "", "network environment of the fallback config: production or test")
	migrateCmd.Flags().IntVar(&migrateScale, "scale", state.ScaleAuto, "interface scale preset, as a command-line override would set it")
	migrateCmd.Flags().BoolVar(&migrateNight, "night", false, "start with night mode enabled")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "decode and apply without writing documents")
	migrateCmd.Flags().BoolVar(&migrateNoAudit, "no-audit", false, "do not record this run in the audit log")
}

// resetMigrateCommandState resets the migrate command's global state for testing.
func resetMigrateCommandState() {
	migrateFormatVersion = configs.DefaultFormatVersion
	migrateCacheSize = 0
	migrateCustomBackground = false
	migrateOutputDir = ""
	migrateFormat = ""
	migrateEnvironment = ""
	migrateScale = state.ScaleAuto
	migrateNight = false
	migrateDryRun = false
	migrateNoAudit = false
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <path|glob|->...",
	Short: "Migrate legacy settings streams",
	Long: `Reads one or more legacy settings streams, applies every record and
writes the migrated state together with the fallback network
configuration as a TOML or JSON document.

Directories are searched recursively for files named settings*. Globs
support ** for any number of directories. Migrated documents (.toml,
.json) are never picked up again. With --output-dir, each document keeps
its input's path relative to the common parent of all inputs. Use - to read a single stream
from stdin; its document is written to stdout.

A stream that cannot be read to the end is reported with the index and
tag of the failing record. Records before it were applied, but no
document is written for it.

Examples:
  tdmigrate migrate tdata/settingss
  tdmigrate migrate ~/backups --output-dir migrated
  tdmigrate migrate 'tdata/**/settings*' --format json
  tdmigrate migrate - < settingss > settings.toml
  tdmigrate migrate tdata --format-version 1009000 --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting migrate command")

	config, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := migrateOptionsFromFlags(cmd, args, config)
	if err != nil {
		return err
	}

	// A document streamed to stdout must not be mixed with spinner frames.
	cleanup := func() {}
	if !slices.Contains(args, "-") {
		_, cleanup = startSpinner("Migrating settings...")
	}

	result, err := workflows.Migrate(context.Background(), opts)
	cleanup()
	if err != nil {
		fmt.Println(ui.Failed(err.Error()))
		return err
	}

	printMigrateResult(result)

	if failed := result.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d streams failed", failed, len(result.Files))
	}
	return nil
}

func migrateOptionsFromFlags(cmd *cobra.Command, args []string, config *configs.Config) (workflows.MigrateOptions, error) {
	env, err := config.MtpEnvironment()
	if err != nil {
		return workflows.MigrateOptions{}, err
	}
	if migrateEnvironment != "" {
		override := *config
		override.Migration.Environment = migrateEnvironment
		if env, err = override.MtpEnvironment(); err != nil {
			return workflows.MigrateOptions{}, err
		}
	}

	format := config.Output.Format
	if migrateFormat != "" {
		if format, err = configs.ParseOutputFormat(migrateFormat); err != nil {
			return workflows.MigrateOptions{}, err
		}
	}

	outputDir := config.Output.Directory
	if migrateOutputDir != "" {
		outputDir = migrateOutputDir
	}

	opts := workflows.MigrateOptions{
		Inputs:              args,
		FormatVersion:       formatVersionFlag(cmd, migrateFormatVersion, config),
		CustomDayBackground: customBackgroundFlag(cmd, migrateCustomBackground, config),
		CacheMaxDataSize:    cacheSizeFlag(cmd, migrateCacheSize, config),
		Environment:         env,
		OutputDir:           outputDir,
		Format:              format,
		ConfigScale:         state.CheckScale(migrateScale),
		NightMode:           migrateNight,
		DryRun:              migrateDryRun,
		Audit:               config.Audit.Enabled && !migrateNoAudit,
		Stdout:              os.Stdout,
		Logger:              Logger,
	}
	Logger.Debugf("Migrate options: format version %d, environment %s, output %q (%s)", opts.FormatVersion, env, outputDir, format)
	return opts, nil
}

func printMigrateResult(result *workflows.MigrateResult) {
	var b strings.Builder
	for _, file := range result.Files {
		if file.Output == "-" {
			continue
		}
		b.WriteString(formatFileResult(file, result.DryRun))
		b.WriteString("\n")
		for _, w := range file.Warnings {
			b.WriteString("    " + ui.Warned(w) + "\n")
		}
	}

	total := len(result.Files)
	failed := result.Failed()
	if total > 1 {
		b.WriteString("\n")
		summary := fmt.Sprintf("%s migrated", utils.Plural(total-failed, "stream"))
		if failed > 0 {
			summary += fmt.Sprintf(", %d failed", failed)
		}
		b.WriteString(ui.Muted.Sprint(summary) + "\n")
	}

	// Keep stdout clean when a document was streamed to it.
	if slices.ContainsFunc(result.Files, func(f workflows.FileResult) bool { return f.Output == "-" }) {
		fmt.Fprint(os.Stderr, b.String())
		return
	}
	fmt.Print(b.String())
}

func formatFileResult(file workflows.FileResult, dryRun bool) string {
	if file.Err != nil {
		var decodeErr *migrate.DecodeError
		if errors.As(file.Err, &decodeErr) {
			return ui.Failed(fmt.Sprintf("%s: stopped at record %d (%s) after %s: %v",
				ui.Path.Sprint(file.Input), decodeErr.Index, ui.Tag.Sprint(decodeErr.TagName()),
				utils.Plural(file.Records, "record"), decodeErr.Err))
		}
		return ui.Failed(fmt.Sprintf("%s: %v", ui.Path.Sprint(file.Input), file.Err))
	}

	details := utils.Plural(file.Records, "record")
	if file.Discarded > 0 {
		details += fmt.Sprintf(", %d discarded", file.Discarded)
	}
	details += ", fallback from " + file.Fallback

	if dryRun {
		return ui.Done(fmt.Sprintf("%s (%s)", ui.Path.Sprint(file.Input), details))
	}
	return ui.Done(fmt.Sprintf("%s → %s (%s)", ui.Path.Sprint(file.Input), ui.Path.Sprint(file.Output), details))
}
