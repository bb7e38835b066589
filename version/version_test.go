package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillFromBuildInfo(t *testing.T) {
	info := Info{Version: "dev", CommitHash: "dev", BuildTime: "unknown"}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "0123456789abcdef", info.CommitHash)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildTime)
	assert.True(t, info.Modified)
	assert.Equal(t, "0123456", info.Short())
	assert.Contains(t, info.String(), "a2ml v1.2.0 (commit 0123456+dirty, built 2026-01-02T03:04:05Z")
}

func TestLdflagsWin(t *testing.T) {
	info := Info{Version: "v2.0.0", CommitHash: "abc", BuildTime: "today"}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "zzz"}},
	})

	assert.Equal(t, "v2.0.0", info.Version)
	assert.Equal(t, "abc", info.CommitHash)
	assert.Equal(t, "abc", info.Short())
}
