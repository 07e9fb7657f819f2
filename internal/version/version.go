package version

import "fmt"

// These variables are overridden at build time using -ldflags.
// Keep sensible defaults for local development.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// String renders the build info on one line.
func String() string {
	s := fmt.Sprintf("%s (%s)", Version, Commit)
	if Date != "" {
		s += " built " + Date
	}
	if Dirty == "true" {
		s += " dirty"
	}
	return s
}
