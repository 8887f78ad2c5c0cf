package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// APIVersion is the version of the voice detection HTTP contract.
const APIVersion = "1.0.0"

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

// Info represents version information.
type Info struct {
	APIVersion string `json:"api_version"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitBranch  string `json:"git_branch,omitempty"`
	BuildTime  string `json:"build_time,omitempty"`
	GoVersion  string `json:"go_version"`
	IsRelease  bool   `json:"is_release"`
	IsDirty    bool   `json:"is_dirty"`
}

// GetVersionInfo returns build information, filling gaps from the module
// build info embedded by the Go toolchain.
func GetVersionInfo() *Info {
	info := &Info{
		APIVersion: APIVersion,
		Version:    Version,
		GitCommit:  GitCommit,
		GitBranch:  GitBranch,
		BuildTime:  BuildTime,
		IsRelease:  Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = buildInfo.GoVersion
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = setting.Value
				if len(info.GitCommit) > 7 {
					info.GitCommit = info.GitCommit[:7]
				}
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = setting.Value
			}
		}
	}
	return info
}

// GetShortVersion returns "version" or "version-commit[-dirty]".
func GetShortVersion() string {
	info := GetVersionInfo()
	if info.GitCommit == "" {
		return info.Version
	}
	if info.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
	}
	return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
}
