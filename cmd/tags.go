package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/tdmigrate/internal/ui"
	"github.com/PolarWolf314/tdmigrate/internal/workflows"
	"github.com/spf13/cobra"
)

var tagsJSON bool

func init() {
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "output as JSON array")
}

// resetTagsCommandState resets the tags command's global state for testing.
func resetTagsCommandState() {
	tagsJSON = false
}

var tagsCmd = &cobra.Command{
	Use:   "tags [filter]",
	Short: "List the known record tags",
	Long: `Lists every record tag the decoder understands with its numeric value.
Tags marked obsolete are decoded and then discarded.

Examples:
  tdmigrate tags
  tdmigrate tags proxy
  tdmigrate tags --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}

		tags := workflows.ListTags(filter)
		Logger.Debugf("Listing %d tags for filter %q", len(tags), filter)

		if tagsJSON {
			if tags == nil {
				tags = []workflows.TagInfo{}
			}
			output, err := json.MarshalIndent(tags, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal tags to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		if len(tags) == 0 {
			fmt.Println(ui.Warned("No tags match " + ui.Highlight.Sprint(filter)))
			return nil
		}

		for _, info := range tags {
			line := fmt.Sprintf("  0x%02x  %-28s", info.Value, info.Tag)
			if info.Discarded {
				line += " " + ui.Muted.Sprint("obsolete")
			}
			fmt.Println(line)
		}
		return nil
	},
}
