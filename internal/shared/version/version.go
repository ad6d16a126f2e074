// Package version reports the build version of the binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is set at link time:
//
//	go build -ldflags "-X github.com/Kapooral/services-app-server-sub002/internal/shared/version.Current=v1.4.0"
var Current = "dev"

// Info is the payload of the /version probe.
type Info struct {
	Version string `json:"version"`
	Release bool   `json:"release"`
}

// Get describes the running binary.
func Get() Info {
	return Info{Version: Current, Release: IsRelease(Current)}
}

// Normalize trims s and adds the "v" prefix semver expects.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "v") {
		return s
	}
	return "v" + s
}

// IsRelease is true for a valid semver without prerelease suffix, so "dev"
// and "v1.2.0-rc.1" are not releases.
func IsRelease(s string) bool {
	v := Normalize(s)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}
