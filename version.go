package tescrow

import "fmt"

// Semantic version of the release. Suffix marks untagged builds.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set with -ldflags at build time.
var GitCommit = ""

// Version returns the release followed by the commit, when known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
