package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/modrel/internal/runner"
	"github.com/oarkflow/modrel/internal/version"
)

func TestLatestTag(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		module   string
		expected string
		found    bool
	}{
		{
			name:   "no tags",
			module: "mod",
		},
		{
			name:     "numeric not lexicographic",
			tags:     []string{"mod/v1.9.0", "mod/v1.10.0", "mod/v1.2.0"},
			module:   "mod",
			expected: "mod/v1.10.0",
			found:    true,
		},
		{
			name:     "other modules ignored",
			tags:     []string{"mod/v1.0.0", "other/v9.0.0", "modx/v5.0.0", "v3.0.0"},
			module:   "mod",
			expected: "mod/v1.0.0",
			found:    true,
		},
		{
			name:   "prerelease and malformed tags ignored",
			tags:   []string{"mod/v2.0.0-rc1", "mod/1.0.0", "mod/v1.0", "prefix-mod/v1.0.0"},
			module: "mod",
		},
		{
			name:     "nested module",
			tags:     []string{"services/api/v0.1.0", "services/api/v0.0.9", "api/v7.0.0"},
			module:   "services/api",
			expected: "services/api/v0.1.0",
			found:    true,
		},
		{
			name:     "regex characters in module",
			tags:     []string{"a.b/v1.0.0", "axb/v2.0.0"},
			module:   "a.b",
			expected: "a.b/v1.0.0",
			found:    true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tag, _, found := LatestTag(tc.tags, tc.module)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, tag)
		})
	}
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "mod/v1.2.3", TagName("mod", version.Version{Major: 1, Minor: 2, Patch: 3}))
}

func TestRepoSubjects(t *testing.T) {
	fake := runner.NewFake().
		On("git log mod/v1.0.0..HEAD --pretty=format:%s -- mod/", "feat(mod): a\nfix(mod): b\n\n", nil).
		On("git log --pretty=format:%s -- mod/", "chore(mod): init", nil)
	repo := New(fake, "/repo", "")

	subjects, err := repo.Subjects(context.Background(), "mod/v1.0.0", "mod")
	require.NoError(t, err)
	assert.Equal(t, []string{"feat(mod): a", "fix(mod): b"}, subjects)

	subjects, err = repo.Subjects(context.Background(), "", "mod/")
	require.NoError(t, err)
	assert.Equal(t, []string{"chore(mod): init"}, subjects)

	for _, c := range fake.Calls() {
		assert.Equal(t, "/repo", c.Dir)
	}
}

func TestRepoLatestModuleTag(t *testing.T) {
	fake := runner.NewFake().On("git tag", "mod/v1.9.0\nmod/v1.10.0\nother/v2.0.0\n", nil)
	repo := New(fake, ".", "git")

	tag, err := repo.LatestModuleTag(context.Background(), "mod")
	require.NoError(t, err)
	assert.Equal(t, "mod/v1.10.0", tag)
}

func TestRepoWriteCommands(t *testing.T) {
	fake := runner.NewFake()
	repo := New(fake, ".", "")
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "mod/CHANGELOG.md", "mod/version.txt"))
	require.NoError(t, repo.Commit(ctx, "chore(mod): release v1.0.0"))
	require.NoError(t, repo.CreateTag(ctx, "mod/v1.0.0", "chore(mod): release v1.0.0", false))
	require.NoError(t, repo.CreateTag(ctx, "mod/v1.0.0", "msg", true))
	require.NoError(t, repo.Push(ctx, ""))
	require.NoError(t, repo.PushTags(ctx, "origin"))

	assert.Equal(t, []string{
		"git add mod/CHANGELOG.md mod/version.txt",
		"git commit -m chore(mod): release v1.0.0",
		"git tag mod/v1.0.0",
		"git tag -a -m msg mod/v1.0.0",
		"git push",
		"git push origin --tags",
	}, fake.CommandLines())
}

func TestRepoErrors(t *testing.T) {
	fake := runner.NewFake().On("git tag", "", errors.New("not a git repository"))
	repo := New(fake, ".", "")

	_, err := repo.Tags(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")

	var runErr *runner.Error
	assert.True(t, errors.As(err, &runErr))
}
