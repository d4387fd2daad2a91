// Package version exposes build information for divide binaries.
//
// Version, git commit, branch and build time are set at compile time via
// -ldflags and fall back to the VCS stamp embedded by the Go toolchain:
//
//	go build -ldflags "-X github.com/kbukum/divide/version.Version=1.0.0" ./cmd/divide-bench
package version
