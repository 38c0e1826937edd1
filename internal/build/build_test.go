package build

import "testing"

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"dev", "", "", "dev"},
		{"v0.3.0", "4f2a9c1", "", "v0.3.0 (4f2a9c1)"},
		{"v0.3.0", "4f2a9c1", "2026-10-14", "v0.3.0 (4f2a9c1, 2026-10-14)"},
		{"v0.3.0", "", "2026-10-14", "v0.3.0 (2026-10-14)"},
	}

	for _, tt := range tests {
		Version, Commit, Date = tt.version, tt.commit, tt.date
		if got := String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
