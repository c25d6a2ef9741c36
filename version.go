package milestone

import "fmt"

// Release version of the module. Untagged builds carry a suffix.
const (
	versionMajor  = 0
	versionMinor  = 1
	versionPatch  = 0
	versionSuffix = "-dev"
)

// GitCommit is set at build time with
//   -ldflags "-X github.com/iov-one/milestone.GitCommit=<hash>"
var GitCommit = ""

// Version returns the release version followed by the commit, if known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", versionMajor, versionMinor, versionPatch, versionSuffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
