package utils

import (
	"fmt"
	"io"
	"os"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
)

// ReadStdin reads all content from stdin.
// Returns an error if stdin is a terminal (no piped data) or cannot be read.
func ReadStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// If ModeCharDevice is set, stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("%w: no data on stdin (hint: pipe a settings stream to this command)", kerrors.ErrEmptyInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	return data, nil
}

// ReadInput reads a whole settings stream from path, or from stdin when
// path is "-". An empty input is an error.
func ReadInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = ReadStdin()
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrInputNotFound, path)
		}
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrEmptyInput, path)
	}
	return data, nil
}
