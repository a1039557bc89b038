package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestLine(t *testing.T) {
	color.NoColor = true
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "flow2ts 1.2.3"},
		{"1.2.3-rc1", "abc123", "", "flow2ts 1.2.3-rc1 (abc123)"},
		{"1.2.3", "abc123", "2024-01-15", "flow2ts 1.2.3 (abc123, 2024-01-15)"},
		{"1.2.3", "", "2024-01-15", "flow2ts 1.2.3 (2024-01-15)"},
		{"nightly", "", "", "flow2ts nightly"},
	}
	for _, tt := range tests {
		Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
		if got := Line(); got != tt.want {
			t.Fatalf("Line() = %q, want %q", got, tt.want)
		}
	}
}
