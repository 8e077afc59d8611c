package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildInfoOf(mainVersion string, settings map[string]string) *debug.BuildInfo {
	info := &debug.BuildInfo{Main: debug.Module{Version: mainVersion}}
	for k, v := range settings {
		info.Settings = append(info.Settings, debug.BuildSetting{Key: k, Value: v})
	}
	return info
}

func TestResolve(t *testing.T) {
	placeholder := Info{Version: "dev", Commit: "none", Date: "unknown"}
	tests := []struct {
		name string
		in   Info
		bi   *debug.BuildInfo
		want Info
	}{
		{
			name: "ldflags set, build info ignored",
			in:   Info{Version: "1.2.3", Commit: "abc1234", Date: "2025-01-01T00:00:00Z"},
			bi:   buildInfoOf("v0.5.0", map[string]string{"vcs.revision": "deadbeefcafe", "vcs.time": "2024-06-01T00:00:00Z"}),
			want: Info{Version: "1.2.3", Commit: "abc1234", Date: "2025-01-01T00:00:00Z"},
		},
		{
			name: "module version only",
			in:   placeholder,
			bi:   buildInfoOf("v0.5.0", nil),
			want: Info{Version: "0.5.0", Commit: "none", Date: "unknown"},
		},
		{
			name: "devel build with vcs settings",
			in:   placeholder,
			bi:   buildInfoOf("(devel)", map[string]string{"vcs.revision": "deadbeefcafe123", "vcs.time": "2024-06-01T12:00:00Z"}),
			want: Info{Version: "dev", Commit: "deadbee", Date: "2024-06-01T12:00:00Z"},
		},
		{
			name: "empty build info",
			in:   placeholder,
			bi:   &debug.BuildInfo{},
			want: placeholder,
		},
		{
			name: "short revision kept whole",
			in:   placeholder,
			bi:   buildInfoOf("(devel)", map[string]string{"vcs.revision": "abc"}),
			want: Info{Version: "dev", Commit: "abc", Date: "unknown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(tt.in, tt.bi))
		})
	}
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "1.0.0", Commit: "abc1234", Date: "2025-03-15"}
	assert.Equal(t, "catalog version 1.0.0 (commit: abc1234, built: 2025-03-15)", info.String())
}

func TestGet_NotEmpty(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.Commit)
	assert.NotEmpty(t, info.Date)
}
