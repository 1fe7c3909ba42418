// Package version holds build metadata set with -ldflags "-X".
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the metadata as printed by `savedobjects version`.
func String() string {
	return fmt.Sprintf("savedobjects %s (commit %s, built %s)", Version, Commit, Date)
}
