// Package cmd holds the build information stamped in by the linker.
package cmd

var (
	// Version is set at build time with -ldflags "-X github.com/circleci/coffeeshop/cmd.Version=..."
	Version = "dev"
	// Date is the build date, set the same way as Version.
	Date = "unknown"
)
