package utils

import (
	"testing"
)

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Skipf("No current user available: %v", err)
	}
	if username == "" {
		t.Error("Expected non-empty username")
	}
}

func TestGetHostname(t *testing.T) {
	hostname, err := GetHostname()
	if err != nil {
		t.Fatalf("GetHostname failed: %v", err)
	}
	if hostname == "" {
		t.Error("Expected non-empty hostname")
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0 records"},
		{1, "1 record"},
		{86, "86 records"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := Plural(tc.n, "record"); got != tc.expected {
				t.Errorf("Plural(%d) = %q, expected %q", tc.n, got, tc.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"Short", "abc", 5, "abc"},
		{"Exact", "abcde", 5, "abcde"},
		{"Cut", "abcdef", 5, "abcd…"},
		{"Runes", "😀😀😀", 2, "😀…"},
		{"NoWidth", "abc", 0, "abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.input, tc.width); got != tc.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tc.input, tc.width, got, tc.expected)
			}
		})
	}
}
