package buildinfo

import "fmt"

// Overridden at link time with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("mkr1 %s (commit=%s, date=%s)", Version, Commit, Date)
}
