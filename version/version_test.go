package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBranch, origBuildTime := Version, GitCommit, GitBranch, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		GitBranch = origBranch
		BuildTime = origBuildTime
	}
}

func TestGetVersionInfoDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"

	info := GetVersionInfo()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.APIVersion != APIVersion {
		t.Errorf("expected api version %q, got %q", APIVersion, info.APIVersion)
	}
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
}

func TestGetVersionInfoLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abc1234"
	GitBranch = "main"
	BuildTime = "2024-01-15T10:30:00Z"

	info := GetVersionInfo()
	if !info.IsRelease {
		t.Error("1.2.0 should be a release")
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("expected 'abc1234', got %q", info.GitCommit)
	}
	if info.BuildTime != "2024-01-15T10:30:00Z" {
		t.Errorf("ldflags build time must win, got %q", info.BuildTime)
	}
}

func TestGetVersionInfoDirtyVersion(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0-dirty"

	if GetVersionInfo().IsRelease {
		t.Error("dirty version should not be a release")
	}
}

func TestGetShortVersion(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0"
	GitCommit = "abc1234"

	sv := GetShortVersion()
	if !strings.HasPrefix(sv, "1.0.0-abc1234") {
		t.Errorf("expected '1.0.0-abc1234' prefix, got %q", sv)
	}
}
