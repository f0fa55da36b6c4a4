package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	cases := []struct {
		val      string
		expected int
	}{
		{"", 7},
		{"12", 12},
		{"-1", 7},
		{"ten", 7},
	}

	for _, tc := range cases {
		t.Setenv("INT_TEST", tc.val)
		if got := intEnvOrDefault("INT_TEST", 7); got != tc.expected {
			t.Fatalf("expected %d for %q, got %d", tc.expected, tc.val, got)
		}
	}
}

func TestEnvOrDefaultTrimsWhitespace(t *testing.T) {
	t.Setenv("STR_TEST", "   ")
	if got := envOrDefault("STR_TEST", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}
	t.Setenv("STR_TEST", " value ")
	if got := envOrDefault("STR_TEST", "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestPathEnvOrDefaultExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	t.Setenv("PATH_TEST", "~/Desktop/model.xlsm")

	got := pathEnvOrDefault("PATH_TEST", "")
	if want := filepath.Join(home, "Desktop", "model.xlsm"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := ExpandHome("/abs/path.xlsx"); got != "/abs/path.xlsx" {
		t.Fatalf("expected absolute path untouched, got %s", got)
	}
}
