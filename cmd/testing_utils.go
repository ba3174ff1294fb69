// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and building a CLI instance.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
	"github.com/PolarWolf314/tdmigrate/internal/scheme"
	"github.com/PolarWolf314/tdmigrate/internal/workflows"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points the config and audit paths at a temporary
// directory and resets command state. It returns that directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalSettings := configs.Settings
	configs.Settings = &configs.ToolSettings{
		ConfigPath: filepath.Join(tempDir, "config", "config.toml"),
		AuditPath:  filepath.Join(tempDir, "data", "audit.jsonl"),
		Username:   "testuser",
		Hostname:   "testhost",
	}
	ResetGlobalState()

	t.Cleanup(func() {
		configs.Settings = originalSettings
		ResetGlobalState()
	})

	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	drain := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}

// createTestCLI creates a complete CLI instance for testing with the given
// arguments.
func createTestCLI(args ...string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tdmigrate",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	Register(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes the CLI with args and returns its combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
}

// writeTestStream encodes records into a settings file under dir.
func writeTestStream(t *testing.T, path string, records ...scheme.Record) {
	t.Helper()
	data, err := workflows.EncodeRecords(records)
	if err != nil {
		t.Fatalf("Failed to encode records: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write stream: %v", err)
	}
}
