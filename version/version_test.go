package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)

	tests := []struct {
		version, commit, date string
		expected              string
	}{
		{"dev", "abc123", "2025-01-01", "dev"},
		{"v1.0.0", "unknown", "unknown", "v1.0.0"},
		{"v1.0.0", "abc123", "2025-01-01", "v1.0.0 (commit abc123, built 2025-01-01)"},
	}

	for _, tt := range tests {
		Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
		if got := GetFullVersion(); got != tt.expected {
			t.Errorf("GetFullVersion failed: expected %q, got %q", tt.expected, got)
		}
	}
}
