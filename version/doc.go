// Package version provides build version information for voicecheck.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/voicecheck/version.Version=1.0.0"
//
// APIVersion is the version of the HTTP contract and changes only when the
// request or response envelopes change.
package version
