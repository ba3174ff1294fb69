package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
	"github.com/PolarWolf314/tdmigrate/internal/ui"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
	"github.com/PolarWolf314/tdmigrate/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	encodeOutput        string
	encodeFormatVersion int32
	encodeCacheSize     int64
	encodeAllowInvalid  bool
)

func init() {
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "file to write the stream to (default: stdout when it is not a terminal)")
	encodeCmd.Flags().Int32Var(&encodeFormatVersion, "format-version", configs.DefaultFormatVersion, "format version records are validated against")
	encodeCmd.Flags().Int64Var(&encodeCacheSize, "cache-max-size", 0, "largest cache entry size in bytes (0 uses the built-in threshold)")
	encodeCmd.Flags().BoolVar(&encodeAllowInvalid, "allow-invalid", false, "write records the decoder would reject")
}

// resetEncodeCommandState resets the encode command's global state for testing.
func resetEncodeCommandState() {
	encodeOutput = ""
	encodeFormatVersion = configs.DefaultFormatVersion
	encodeCacheSize = 0
	encodeAllowInvalid = false
}

var encodeCmd = &cobra.Command{
	Use:   "encode <script.toml>",
	Short: "Build a settings stream from a record script",
	Long: `Builds a legacy settings stream from a TOML record script. Each record
names its tag and the fields of its layout:

  [[record]]
  tag = "AutoStart"
  [record.fields]
  value = 1

  [[record]]
  tag = "WindowPosition"
  [record.fields]
  x = 10
  y = 20
  w = 800
  h = 600
  maximized = true

Records are validated like the decoder would validate them unless
--allow-invalid is given. Run 'tdmigrate inspect --json' on an existing
stream to see the field names of each layout.

Examples:
  tdmigrate encode records.toml -o settingss
  tdmigrate encode records.toml | tdmigrate inspect -`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func runEncode(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting encode command")

	if encodeOutput == "" && utils.IsStdoutTerminal() {
		err := fmt.Errorf("refusing to write a binary stream to a terminal")
		fmt.Println(ui.Failed(err.Error()))
		fmt.Println(ui.Hint("Use " + ui.Flag.Sprint("--output") + " or redirect stdout"))
		return err
	}

	config, err := loadConfig()
	if err != nil {
		return err
	}

	if encodeAllowInvalid {
		Logger.WarnfAlways("Records are not validated; the stream may not decode")
	}

	result, err := workflows.Encode(context.Background(), workflows.EncodeOptions{
		Script:           args[0],
		Output:           encodeOutput,
		FormatVersion:    formatVersionFlag(cmd, encodeFormatVersion, config),
		CacheMaxDataSize: cacheSizeFlag(cmd, encodeCacheSize, config),
		AllowInvalid:     encodeAllowInvalid,
		Audit:            config.Audit.Enabled,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Failed(err.Error()))
		return err
	}

	if encodeOutput == "" {
		if _, err := os.Stdout.Write(result.Data); err != nil {
			return Logger.ErrorfAndReturn("Failed to write stream: %w", err)
		}
		return nil
	}

	fmt.Println(ui.Done(fmt.Sprintf("Wrote %s (%s) to %s",
		utils.Plural(result.Records, "record"), utils.Plural(len(result.Data), "byte"), ui.Path.Sprint(result.Output))))
	return nil
}
