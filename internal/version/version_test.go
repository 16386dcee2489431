package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func override(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "vfmt 1.2.3"},
		{"1.2.3", "abc123", "", "vfmt 1.2.3 (abc123)"},
		{"1.2.3", "1234567890abcdef1234", "2024-01-15", "vfmt 1.2.3 (1234567890ab, 2024-01-15)"},
	}
	for _, tt := range tests {
		override(t, tt.version, tt.commit, tt.date)
		if got := Describe(false); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	override(t, "0.1.0-dev", "", "")
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	if got := Colored(); got != "0.1.0-dev" {
		t.Fatalf("Colored() without colour = %q", got)
	}

	override(t, "weird", "", "")
	if got := Colored(); got != "weird" {
		t.Fatalf("Colored() = %q", got)
	}
}

func TestDefaultVersionIsPlain(t *testing.T) {
	if strings.Contains(Version, "\x1b") {
		t.Fatalf("Version carries escape codes: %q", Version)
	}
}
