package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/tdmigrate/internal/ui"
	"github.com/PolarWolf314/tdmigrate/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode and stdout is a terminal.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function calls ui.EnsureNewline() on the final message before printing
// it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	active := !verbose && !debug && utils.IsStdoutTerminal()
	if active {
		s.Start()
		// Ensure log output is discarded while the spinner owns the line.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if active {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if active {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
