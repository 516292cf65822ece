package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func TestStamp(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	vcs := func(kv ...string) []debug.BuildSetting {
		var out []debug.BuildSetting
		for i := 0; i+1 < len(kv); i += 2 {
			out = append(out, debug.BuildSetting{Key: kv[i], Value: kv[i+1]})
		}
		return out
	}

	tests := []struct {
		name        string
		version     string
		commit      string
		settings    []debug.BuildSetting
		wantVersion string
		wantCommit  string
	}{
		{
			name:        "linker values win",
			version:     "v1.2.3",
			commit:      "abc123",
			settings:    vcs("vcs.revision", "ffffffffffff", "vcs.time", "2025-01-02T00:00:00Z"),
			wantVersion: "v1.2.3",
			wantCommit:  "abc123",
		},
		{
			name:        "vcs stamp",
			settings:    vcs("vcs.revision", "0123456789abcdef", "vcs.time", "2025-01-02T10:00:00Z"),
			wantVersion: "dev-20250102",
			wantCommit:  "0123456",
		},
		{
			name:        "dirty tree",
			settings:    vcs("vcs.revision", "0123456789abcdef", "vcs.modified", "true"),
			wantVersion: "dev-20260304-050607",
			wantCommit:  "0123456-dirty",
		},
		{
			name:        "short revision kept whole",
			settings:    vcs("vcs.revision", "abc"),
			wantVersion: "dev-20260304-050607",
			wantCommit:  "abc",
		},
		{
			name:        "no build info",
			wantVersion: "dev-20260304-050607",
			wantCommit:  "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := stamp(tt.version, tt.commit, tt.settings, now)
			if v != tt.wantVersion || c != tt.wantCommit {
				t.Errorf("stamp() = (%q, %q), want (%q, %q)", v, c, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = old })

	if got := UserAgent(); got != "userdeck/v9.9.9" {
		t.Errorf("UserAgent() = %q", got)
	}
	if got := Full(); !strings.HasPrefix(got, "v9.9.9 (commit: ") {
		t.Errorf("Full() = %q", got)
	}
}
