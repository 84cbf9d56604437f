/*
Package conventional classifies conventional-commit subjects into bump levels
and changelog sections.

A "!:" marker counts anywhere in the subject. Only exact "type(module):"
prefixes produce changelog entries.
*/
package conventional

import (
	"regexp"
	"strings"

	"github.com/oarkflow/modrel/internal/version"
)

// BreakingMarker marks a breaking change anywhere in a commit message.
const BreakingMarker = "BREAKING CHANGE"

var breakingRe = regexp.MustCompile(`\w+(\(.*\))?!:`)

// Type maps a commit type to its changelog section title.
type Type struct {
	Name  string `yaml:"type" json:"type"`
	Title string `yaml:"title" json:"title"`
}

// DefaultTypes are the commit types that produce changelog sections, in
// section order.
var DefaultTypes = []Type{
	{Name: "feat", Title: "Features"},
	{Name: "fix", Title: "Fixes"},
	{Name: "chore", Title: "Chores"},
	{Name: "refactor", Title: "Refactors"},
}

// Section is a titled list of changelog bullets.
type Section struct {
	Type    string   `yaml:"type" json:"type"`
	Title   string   `yaml:"title" json:"title"`
	Entries []string `yaml:"entries" json:"entries"`
}

// IsBreaking reports whether a message signals a breaking change.
func IsBreaking(msg string) bool {
	return strings.Contains(msg, BreakingMarker) || breakingRe.MatchString(msg)
}

// IsFeature reports whether a subject is a scoped feature commit.
func IsFeature(msg string) bool {
	return strings.HasPrefix(msg, "feat(")
}

// Classify returns the bump level for a batch of commit messages.
func Classify(msgs []string) version.Level {
	level := version.Patch
	for _, msg := range msgs {
		if IsBreaking(msg) {
			return version.Major
		}
		if IsFeature(msg) {
			level = version.Minor
		}
	}
	return level
}

// Sections groups the subjects scoped to module into changelog sections.
// Empty sections are omitted.
func Sections(msgs []string, module string, types []Type) []Section {
	if types == nil {
		types = DefaultTypes
	}

	var sections []Section
	for _, t := range types {
		prefix := t.Name + "(" + module + "):"
		s := Section{Type: t.Name, Title: t.Title}
		for _, msg := range msgs {
			if rest, ok := strings.CutPrefix(msg, prefix); ok {
				s.Entries = append(s.Entries, strings.TrimSpace(rest))
			}
		}
		if len(s.Entries) > 0 {
			sections = append(sections, s)
		}
	}
	return sections
}
