package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfo_Strings(t *testing.T) {
	info := Info{
		Version:   "1.2.0",
		GitCommit: "abc1234",
		BuildTime: "2026-01-02T03:04:05Z",
		GoVersion: "go1.23.4",
		Platform:  "linux/amd64",
	}

	assert.Equal(t, "timecode 1.2.0", info.Short())
	assert.True(t, strings.HasPrefix(info.String(), "timecode 1.2.0 (commit: abc1234"))
	assert.Contains(t, info.String(), "linux/amd64")

	fields := info.Fields()
	assert.Equal(t, "abc1234", fields["git_commit"])
	assert.Len(t, fields, 4)
}
