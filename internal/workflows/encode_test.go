package workflows

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/tdmigrate/internal/configs"
	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/PolarWolf314/tdmigrate/internal/scheme"
)

const sampleScript = `
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

[[record]]
tag = "ThemeKey"
[record.fields]
day = "0x0000000000000001"
night = "0x0000000000000002"
night_mode = 1
`

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return path
}

func TestParseScript(t *testing.T) {
	env := scheme.DefaultEnv(configs.DefaultFormatVersion)

	t.Run("Records", func(t *testing.T) {
		records, err := ParseScript([]byte(sampleScript), env, false)
		if err != nil {
			t.Fatalf("ParseScript failed: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("Expected 3 records, got %d", len(records))
		}

		window, ok := records[1].(*scheme.WindowPositionRecord)
		if !ok {
			t.Fatalf("Expected WindowPositionRecord, got %T", records[1])
		}
		if window.W != 800 || !window.Maximized {
			t.Errorf("Unexpected window position: %+v", window.WindowPosition)
		}

		theme, ok := records[2].(*scheme.ThemeKeyRecord)
		if !ok {
			t.Fatalf("Expected ThemeKeyRecord, got %T", records[2])
		}
		if theme.Night != 2 || theme.NightMode != 1 {
			t.Errorf("Unexpected theme key: %+v", theme)
		}
	})

	t.Run("NumericTag", func(t *testing.T) {
		records, err := ParseScript([]byte("[[record]]\ntag = \"0x4f\"\n"), env, false)
		if err != nil {
			t.Fatalf("ParseScript failed: %v", err)
		}
		if records[0].Tag() != scheme.Tag(0x4f) {
			t.Errorf("Expected tag 0x4f, got %s", records[0].Tag())
		}
	})

	t.Run("UnknownField", func(t *testing.T) {
		script := "[[record]]\ntag = \"AutoStart\"\n[record.fields]\nvalue = 1\nbogus = 2\n"
		_, err := ParseScript([]byte(script), env, false)
		if !errors.Is(err, kerrors.ErrInvalidScript) {
			t.Fatalf("Expected ErrInvalidScript, got %v", err)
		}
	})

	t.Run("UnknownTag", func(t *testing.T) {
		_, err := ParseScript([]byte("[[record]]\ntag = \"NoSuchTag\"\n"), env, false)
		if err == nil {
			t.Fatal("Expected error for unknown tag")
		}
	})

	t.Run("MissingTag", func(t *testing.T) {
		_, err := ParseScript([]byte("[[record]]\n[record.fields]\nvalue = 1\n"), env, false)
		if !errors.Is(err, kerrors.ErrInvalidScript) {
			t.Fatalf("Expected ErrInvalidScript, got %v", err)
		}
	})

	t.Run("RejectedRecord", func(t *testing.T) {
		script := "[[record]]\ntag = \"SendKeyOld\"\n[record.fields]\nvalue = 7\n"
		if _, err := ParseScript([]byte(script), env, false); !errors.Is(err, kerrors.ErrValidationRejected) {
			t.Fatalf("Expected ErrValidationRejected, got %v", err)
		}
		if _, err := ParseScript([]byte(script), env, true); err != nil {
			t.Fatalf("Expected AllowInvalid to accept the record, got %v", err)
		}
	})
}

func TestEncode_RoundTripsThroughInspect(t *testing.T) {
	withAuditPath(t)
	output := filepath.Join(t.TempDir(), "out", "settingss")

	result, err := Encode(context.Background(), EncodeOptions{
		Script:        writeScript(t, sampleScript),
		Output:        output,
		FormatVersion: configs.DefaultFormatVersion,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if result.Records != 3 {
		t.Errorf("Expected 3 records, got %d", result.Records)
	}

	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read stream: %v", err)
	}
	if !bytes.Equal(written, result.Data) {
		t.Error("Expected written stream to match result data")
	}

	inspected, err := Inspect(context.Background(), InspectOptions{
		Input:         output,
		FormatVersion: configs.DefaultFormatVersion,
	})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if inspected.Err != nil {
		t.Fatalf("Expected clean stream, got %v", inspected.Err)
	}
	if len(inspected.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(inspected.Entries))
	}
	if inspected.Entries[1].Tag != scheme.TagWindowPosition {
		t.Errorf("Expected WindowPosition, got %s", inspected.Entries[1].Tag)
	}
	if inspected.Size != len(written) {
		t.Errorf("Expected size %d, got %d", len(written), inspected.Size)
	}
}

func TestEncode_MissingScript(t *testing.T) {
	_, err := Encode(context.Background(), EncodeOptions{
		Script:        filepath.Join(t.TempDir(), "missing.toml"),
		FormatVersion: configs.DefaultFormatVersion,
	})
	if !errors.Is(err, kerrors.ErrInputNotFound) {
		t.Fatalf("Expected ErrInputNotFound, got %v", err)
	}
}

func TestInspect_ReportsStopWithoutFailing(t *testing.T) {
	withAuditPath(t)
	script := "[[record]]\ntag = \"AutoStart\"\n[record.fields]\nvalue = 1\n" +
		"[[record]]\ntag = \"SendKeyOld\"\n[record.fields]\nvalue = 7\n"

	encoded, err := Encode(context.Background(), EncodeOptions{
		Script:        writeScript(t, script),
		Output:        filepath.Join(t.TempDir(), "settingss"),
		FormatVersion: configs.DefaultFormatVersion,
		AllowInvalid:  true,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	result, err := Inspect(context.Background(), InspectOptions{
		Input:         encoded.Output,
		FormatVersion: configs.DefaultFormatVersion,
		Audit:         true,
	})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(result.Entries))
	}
	if !errors.Is(result.Err, kerrors.ErrValidationRejected) {
		t.Errorf("Expected ErrValidationRejected, got %v", result.Err)
	}
}

func TestListTags(t *testing.T) {
	all := ListTags("")
	if len(all) != len(scheme.AllTags()) {
		t.Fatalf("Expected %d tags, got %d", len(scheme.AllTags()), len(all))
	}

	filtered := ListTags("proxy")
	if len(filtered) == 0 {
		t.Fatal("Expected proxy tags")
	}
	for _, info := range filtered {
		if info.Value != uint32(info.Tag) {
			t.Errorf("Value mismatch for %s", info.Tag)
		}
	}
}
