/*
Package version provides module version parsing and bumping for modrel.
*/
package version

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Level is a semantic version bump level
type Level int

const (
	Patch Level = iota
	Minor
	Major
)

func (l Level) String() string {
	switch l {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return "patch"
	}
}

// ParseLevel parses "major", "minor" or "patch".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	default:
		return Patch, fmt.Errorf("unknown bump level: %q", s)
	}
}

// Version is a MAJOR.MINOR.PATCH triple
type Version struct {
	Major int
	Minor int
	Patch int
}

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Parse parses a "major.minor.patch" string. A leading "v" is accepted.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	matches := versionRe.FindStringSubmatch(strings.TrimPrefix(s, "v"))
	if matches == nil || !semver.IsValid("v"+matches[0]) {
		return Version{}, fmt.Errorf("invalid version %q: expected MAJOR.MINOR.PATCH", s)
	}

	var v Version
	var err error
	if v.Major, err = strconv.Atoi(matches[1]); err != nil {
		return Version{}, fmt.Errorf("invalid major version in %q: %w", s, err)
	}
	if v.Minor, err = strconv.Atoi(matches[2]); err != nil {
		return Version{}, fmt.Errorf("invalid minor version in %q: %w", s, err)
	}
	if v.Patch, err = strconv.Atoi(matches[3]); err != nil {
		return Version{}, fmt.Errorf("invalid patch version in %q: %w", s, err)
	}
	return v, nil
}

// String returns "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the next version for the given level.
func (v Version) Bump(level Level) Version {
	switch level {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Compare returns -1, 0 or +1 comparing v to o numerically.
func (v Version) Compare(o Version) int {
	return semver.Compare("v"+v.String(), "v"+o.String())
}

// ErrNotExist is returned by ReadFile when the version file is missing.
var ErrNotExist = errors.New("version file not found")

// ReadFile reads a version file holding a single version line.
func ReadFile(path string) (Version, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Version{}, fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	if err != nil {
		return Version{}, fmt.Errorf("failed to read version file: %w", err)
	}

	v, err := Parse(string(data))
	if err != nil {
		return Version{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// WriteFile overwrites path with the version and a trailing newline.
func WriteFile(path string, v Version) error {
	if err := os.WriteFile(path, []byte(v.String()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write version file: %w", err)
	}
	return nil
}
