package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PolarWolf314/tdmigrate/internal/audit"
	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/ui"
	"github.com/PolarWolf314/tdmigrate/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logOutcome   string
	logRunID     string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logOutcome, "outcome", "", "filter by outcome: applied, stopped, failed (comma-separated)")
	logCmd.Flags().StringVar(&logRunID, "run", "", "show only the entries of one run")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logOutcome = ""
	logRunID = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of migrate, inspect and encode runs.

Shows which streams were migrated, how many records were applied and
where a stream stopped. Use filters to narrow down the results.

Examples:
  tdmigrate log                          # View full log
  tdmigrate log -n 10                    # Last 10 entries
  tdmigrate log --reverse                # Most recent first
  tdmigrate log --outcome stopped        # Streams that did not finish
  tdmigrate log --operation migrate      # Filter by operation
  tdmigrate log --since 2024-01-01       # Filter by date
  tdmigrate log --json                   # JSON output`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Outcomes:   logOutcome,
		RunID:      logRunID,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		fmt.Println(formatLogError(err))
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}

	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoAuditLog):
		return ui.Info.Sprint("ℹ") + " No audit log found. Runs will be logged after the first migrate, inspect or encode."

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Failed(err.Error())

	default:
		return ui.Failed("Failed to read audit log: " + err.Error())
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrNoAuditLog),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Printf("%s %s %s %s\n", date, e.Operation, e.Outcome, details)
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-8s  %-8s  %-8s  %s\n", datetime, shortRunID(e.RunID), e.Operation, outcomeString(e.Outcome), details)
	}
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func outcomeString(outcome string) string {
	switch outcome {
	case audit.OutcomeApplied:
		return ui.Success.Sprint(outcome)
	case audit.OutcomeStopped:
		return ui.Warning.Sprint(outcome)
	case audit.OutcomeFailed:
		return ui.Error.Sprint(outcome)
	}
	return outcome
}
