package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/tdmigrate/cmd"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tdmigrate",
	Short: "tdmigrate - migrate legacy Telegram Desktop settings streams.",
	Long: `tdmigrate reads the legacy tagged-record settings streams written by old
Telegram Desktop versions, applies every record to a fresh settings state
and writes the result together with the fallback network configuration.

Usage:
  tdmigrate <command> [flags]

Available Commands:
  migrate    Migrate legacy settings streams
  inspect    List the records of a settings stream
  tags       List the known record tags
  encode     Build a settings stream from a record script
  log        View the audit log
  config     Manage tdmigrate configuration

Run 'tdmigrate help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(c *cobra.Command, args []string) {
		if utils.IsStdoutTerminal() {
			fmt.Println()
			figure.NewColorFigure("tdmigrate", "small", "cyan", true).Print()
			fmt.Println()
		}
		fmt.Println("Run 'tdmigrate --help' to see available commands.")
	},
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
