// Package release implements the release flow: computing the next version
// from existing tags, gating on repository synchronization, cutting the
// release through git-flow and publishing the result.
package release

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// IncrementKind selects which field of the next version is bumped.
type IncrementKind int

const (
	// Patch bumps the patch field and leaves the others untouched.
	Patch IncrementKind = iota

	// Minor bumps the minor field and resets patch to zero.
	Minor

	// Major bumps the major field and resets minor and patch to zero.
	Major
)

// String returns the lowercase name of the increment kind.
func (k IncrementKind) String() string {
	switch k {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return "unknown"
	}
}

// ParseIncrementKind parses an increment kind name, case-insensitively.
func ParseIncrementKind(s string) (IncrementKind, error) {
	switch strings.ToLower(s) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	default:
		return Patch, fmt.Errorf("unknown semver type %q", s)
	}
}

// NextVersion computes the next release version from the existing tags.
// Tags that do not parse as semantic versions are not release tags and are
// silently discarded. When no valid tag exists the very first release is
// 1.0.0 itself; no bump is applied to the absent baseline.
func NextVersion(tags []string, kind IncrementKind) *semver.Version {
	var latest *semver.Version
	for _, tag := range tags {
		version, err := semver.StrictNewVersion(tag)
		if err != nil {
			continue
		}
		if latest == nil || version.GreaterThan(latest) {
			latest = version
		}
	}

	if latest == nil {
		return semver.New(1, 0, 0, "", "")
	}

	var next semver.Version
	switch kind {
	case Major:
		next = latest.IncMajor()
	case Minor:
		next = latest.IncMinor()
	default:
		next = latest.IncPatch()
	}
	return &next
}
