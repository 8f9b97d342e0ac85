package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info returns build information populated via -ldflags.
func Info() (v, c, d string) { return version, commit, date }

// String renders build information for startup logs.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
