package errors

import (
	"fmt"
	"os"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"Nil", nil, CodeNone},
		{"Exhausted", ErrStreamExhausted, CodeExhausted},
		{"WrappedCorrupt", fmt.Errorf("record 3: %w", ErrFieldCorrupt), CodeCorrupt},
		{"UnknownTag", fmt.Errorf("tag 0x99: %w", ErrUnknownTag), CodeUnknownTag},
		{"Rejected", ErrValidationRejected, CodeRejected},
		{"Input", ErrNoInputs, CodeInput},
		{"OutputCollision", fmt.Errorf("b/settingss: %w", ErrOutputCollision), CodeInput},
		{"Config", fmt.Errorf("loading: %w", ErrInvalidConfig), CodeConfig},
		{"PathError", &os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}, CodeIO},
		{"Other", fmt.Errorf("boom"), CodeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsStreamError(t *testing.T) {
	t.Run("StreamErrorsAreTerminal", func(t *testing.T) {
		for _, err := range []error{ErrStreamExhausted, ErrFieldCorrupt, ErrUnknownTag, ErrValidationRejected} {
			if !IsStreamError(err) {
				t.Fatalf("Expected %v to be a stream error", err)
			}
		}
	})

	t.Run("InputErrorIsNotStreamError", func(t *testing.T) {
		if IsStreamError(ErrInputNotFound) {
			t.Fatal("Expected input error not to be a stream error")
		}
	})
}
