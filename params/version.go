package params

import (
	"fmt"
)

// release version of the solana tools
const (
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
	VersionMeta  = "" // eg. "beta", empty for stable releases
)

// Version is the semantic version, eg. "0.1.0".
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

// VersionWithMeta is Version followed by VersionMeta when it is set.
var VersionWithMeta = func() string {
	if VersionMeta == "" {
		return Version
	}
	return Version + "-" + VersionMeta
}()

// VersionWithCommit appends the short git commit and, for unstable builds,
// the commit date, eg. "0.1.0-beta-01234567-20211201".
func VersionWithCommit(gitCommit, gitDate string) string {
	vsn := VersionWithMeta
	if len(gitCommit) >= 8 {
		vsn += "-" + gitCommit[:8]
	}
	if VersionMeta != "" && gitDate != "" {
		vsn += "-" + gitDate
	}
	return vsn
}
