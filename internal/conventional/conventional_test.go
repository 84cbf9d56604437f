package conventional

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oarkflow/modrel/internal/version"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		msgs     []string
		expected version.Level
	}{
		{name: "empty", msgs: nil, expected: version.Patch},
		{name: "fix only", msgs: []string{"fix(mod): y"}, expected: version.Patch},
		{name: "feature wins over chore", msgs: []string{"chore(mod): x", "feat(mod): y"}, expected: version.Minor},
		{name: "bang marker", msgs: []string{"fix(mod)!: y"}, expected: version.Major},
		{name: "bang without scope", msgs: []string{"refactor!: drop api"}, expected: version.Major},
		{name: "bang anywhere", msgs: []string{"docs: mention feat!: syntax"}, expected: version.Major},
		{name: "breaking change text", msgs: []string{"fix(mod): y BREAKING CHANGE"}, expected: version.Major},
		{name: "major beats minor", msgs: []string{"feat(mod): a", "chore(mod)!: b", "fix(mod): c"}, expected: version.Major},
		{name: "unscoped feat is not minor", msgs: []string{"feat: y"}, expected: version.Patch},
		{name: "feature of other module still counts", msgs: []string{"feat(other): y"}, expected: version.Minor},
		{name: "lowercase breaking is ignored", msgs: []string{"fix(mod): breaking change"}, expected: version.Patch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.msgs))
		})
	}
}

func TestSections(t *testing.T) {
	msgs := []string{
		"feat(mod): add X",
		"fix(mod):   trim me  ",
		"feat(other): add X",
		"docs(mod): readme",
		"feat(mod)!: breaking",
		"refactor(mod): tidy",
		"feat(mod): add Y",
	}

	sections := Sections(msgs, "mod", nil)
	assert.Equal(t, []Section{
		{Type: "feat", Title: "Features", Entries: []string{"add X", "add Y"}},
		{Type: "fix", Title: "Fixes", Entries: []string{"trim me"}},
		{Type: "refactor", Title: "Refactors", Entries: []string{"tidy"}},
	}, sections)
}

func TestSectionsNestedModule(t *testing.T) {
	sections := Sections([]string{"chore(services/api): bump deps"}, "services/api", DefaultTypes)
	assert.Equal(t, []Section{
		{Type: "chore", Title: "Chores", Entries: []string{"bump deps"}},
	}, sections)
}

func TestSectionsCustomTypes(t *testing.T) {
	types := []Type{{Name: "perf", Title: "Performance"}}
	sections := Sections([]string{"perf(mod): faster", "feat(mod): new"}, "mod", types)
	assert.Equal(t, []Section{
		{Type: "perf", Title: "Performance", Entries: []string{"faster"}},
	}, sections)
}

func TestSectionsNoMatches(t *testing.T) {
	assert.Empty(t, Sections([]string{"feat(other): x"}, "mod", nil))
}
