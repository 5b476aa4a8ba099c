package cli

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	prevRead := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prevRead })

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.23.4",
			Main:      debug.Module{Path: "github.com/aidanlsb/autokey", Version: "v0.3.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-09-30T08:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
				{Key: "GOOS", Value: "windows"},
				{Key: "GOARCH", Value: "amd64"},
			},
		}, true
	}

	assert.Equal(t, versionInfo{
		Version:    "v0.3.0",
		ModulePath: "github.com/aidanlsb/autokey",
		Commit:     "abc123",
		CommitTime: "2026-09-30T08:00:00Z",
		Modified:   true,
		GoVersion:  "go1.23.4",
		GOOS:       "windows",
		GOARCH:     "amd64",
	}, currentVersionInfo())
}

func TestCurrentVersionInfoFallsBackToLdflags(t *testing.T) {
	prevRead := readBuildInfo
	prevVersion, prevCommit, prevDate := buildVersion, buildCommit, buildDate
	t.Cleanup(func() {
		readBuildInfo = prevRead
		buildVersion, buildCommit, buildDate = prevVersion, prevCommit, prevDate
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	info := currentVersionInfo()
	assert.Equal(t, "devel", info.Version)
	assert.Equal(t, defaultModulePath, info.ModulePath)
	assert.Equal(t, runtime.Version(), info.GoVersion)

	buildVersion, buildCommit, buildDate = "v1.0.0", "def456", "2026-10-01"
	info = currentVersionInfo()
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "def456", info.Commit)
	assert.Equal(t, "2026-10-01", info.CommitTime)
}
