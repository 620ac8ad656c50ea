package npm

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion strips a leading "v" and parses a semver version.
func ParseVersion(version string) (*semver.Version, error) {
	if version == "" {
		return nil, fmt.Errorf("empty version")
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v, nil
}

// Caret returns the caret range constraint for version, e.g. "^9.1.0".
func Caret(version string) (string, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return "", err
	}
	c := "^" + v.String()
	// Sanity check that the result is a constraint npm and semver agree on.
	if _, err := semver.NewConstraint(c); err != nil {
		return "", fmt.Errorf("building constraint for %q: %w", version, err)
	}
	return c, nil
}

// Satisfies reports whether version falls inside constraint.
func Satisfies(constraint, version string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
