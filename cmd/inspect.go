package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
	"github.com/PolarWolf314/tdmigrate/internal/migrate"
	"github.com/PolarWolf314/tdmigrate/internal/ui"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
	"github.com/PolarWolf314/tdmigrate/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	inspectFormatVersion    int32
	inspectCacheSize        int64
	inspectCustomBackground bool
	inspectJSON             bool
)

func init() {
	addStreamFlags(inspectCmd.Flags(), &inspectFormatVersion, &inspectCacheSize, &inspectCustomBackground)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output as JSON")
}

// resetInspectCommandState resets the inspect command's global state for testing.
func resetInspectCommandState() {
	inspectFormatVersion = configs.DefaultFormatVersion
	inspectCacheSize = 0
	inspectCustomBackground = false
	inspectJSON = false
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <path|->",
	Short: "List the records of a settings stream",
	Long: `Decodes a settings stream and lists every record with its offset, size
and decoded fields, without applying anything.

When the stream cannot be read to the end, the records before the
failing one are listed and the failure is reported below them.

Examples:
  tdmigrate inspect tdata/settingss
  tdmigrate inspect tdata/settingss --json
  tdmigrate inspect - < settingss`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

type inspectOutput struct {
	Input   string          `json:"input"`
	Size    int             `json:"size"`
	Entries []migrate.Entry `json:"entries"`
	Error   *inspectError   `json:"error,omitempty"`
}

type inspectError struct {
	Index   int    `json:"index"`
	Tag     string `json:"tag,omitempty"`
	Offset  int    `json:"offset"`
	Message string `json:"message"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting inspect command")

	config, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := workflows.Inspect(context.Background(), workflows.InspectOptions{
		Input:               args[0],
		FormatVersion:       formatVersionFlag(cmd, inspectFormatVersion, config),
		CustomDayBackground: customBackgroundFlag(cmd, inspectCustomBackground, config),
		CacheMaxDataSize:    cacheSizeFlag(cmd, inspectCacheSize, config),
		Audit:               config.Audit.Enabled,
	})
	if err != nil {
		fmt.Println(ui.Failed(err.Error()))
		return err
	}

	Logger.Debugf("Read %d entries from %d bytes", len(result.Entries), result.Size)

	if inspectJSON {
		return outputInspectJSON(result)
	}
	outputInspectText(result)
	return nil
}

func outputInspectJSON(result *workflows.InspectResult) error {
	out := inspectOutput{
		Input:   result.Input,
		Size:    result.Size,
		Entries: result.Entries,
	}
	if out.Entries == nil {
		out.Entries = []migrate.Entry{}
	}

	var decodeErr *migrate.DecodeError
	if errors.As(result.Err, &decodeErr) {
		out.Error = &inspectError{
			Index:   decodeErr.Index,
			Offset:  decodeErr.Offset,
			Message: decodeErr.Err.Error(),
		}
		if decodeErr.TagRead {
			out.Error.Tag = decodeErr.Tag.String()
		}
	}

	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal entries to JSON: %v", err)
	}
	fmt.Println(string(output))
	return nil
}

func outputInspectText(result *workflows.InspectResult) {
	width := utils.TerminalWidth(100)

	fmt.Printf("%s (%s, %s)\n\n", ui.Path.Sprint(result.Input), utils.Plural(result.Size, "byte"), utils.Plural(len(result.Entries), "record"))
	fmt.Printf("  %5s  %8s  %6s  %-28s  %s\n", "#", "OFFSET", "SIZE", "TAG", "FIELDS")

	for _, e := range result.Entries {
		fields := recordSummary(e)
		line := fmt.Sprintf("  %5d  %8d  %6d  %-28s  ", e.Index, e.Offset, e.Size, e.Tag)
		fields = utils.Truncate(fields, width-len(line))
		if e.Discarded {
			fmt.Println(line + ui.Muted.Sprint("discarded") + " " + fields)
			continue
		}
		fmt.Println(line + fields)
	}

	var decodeErr *migrate.DecodeError
	if errors.As(result.Err, &decodeErr) {
		fmt.Println()
		fmt.Println(ui.Failed(fmt.Sprintf("Stopped at record %d (%s) at offset %d: %v",
			decodeErr.Index, ui.Tag.Sprint(decodeErr.TagName()), decodeErr.Offset, decodeErr.Err)))
	}
}

// recordSummary renders the decoded fields of a record on one line.
func recordSummary(e migrate.Entry) string {
	data, err := json.Marshal(e.Record)
	if err != nil {
		return ""
	}
	summary := strings.TrimSuffix(strings.TrimPrefix(string(data), "{"), "}")
	return summary
}
