/*
Package git provides the git operations modrel needs to release a module.
*/
package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/oarkflow/modrel/internal/runner"
	"github.com/oarkflow/modrel/internal/version"
)

// Repo runs git commands against a repository root
type Repo struct {
	runner runner.Runner
	dir    string
	binary string
}

// New creates a Repo rooted at dir. An empty binary means "git".
func New(r runner.Runner, dir, binary string) *Repo {
	if binary == "" {
		binary = "git"
	}
	return &Repo{
		runner: r,
		dir:    dir,
		binary: binary,
	}
}

// Dir returns the repository root
func (r *Repo) Dir() string {
	return r.dir
}

// TagName returns the release tag for a module version
func TagName(module string, v version.Version) string {
	return module + "/v" + v.String()
}

// Tags lists all tags in the repository
func (r *Repo) Tags(ctx context.Context) ([]string, error) {
	output, err := r.output(ctx, "tag")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return lines(output), nil
}

// LatestTag selects the module tag with the greatest version. Tags that do
// not match "<module>/vMAJOR.MINOR.PATCH" exactly are ignored.
func LatestTag(tags []string, module string) (string, version.Version, bool) {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(module) + `/v(\d+\.\d+\.\d+)$`)

	var (
		latest string
		best   version.Version
		found  bool
	)
	for _, tag := range tags {
		matches := re.FindStringSubmatch(strings.TrimSpace(tag))
		if matches == nil {
			continue
		}
		v, err := version.Parse(matches[1])
		if err != nil {
			continue
		}
		if !found || v.Compare(best) > 0 {
			latest, best, found = matches[0], v, true
		}
	}

	return latest, best, found
}

// LatestModuleTag returns the newest release tag of module, or "" if the
// module has never been released.
func (r *Repo) LatestModuleTag(ctx context.Context, module string) (string, error) {
	tags, err := r.Tags(ctx)
	if err != nil {
		return "", err
	}
	tag, _, _ := LatestTag(tags, module)
	return tag, nil
}

// Subjects returns the subjects of commits reachable from HEAD since ref
// (exclusive) that touch path, most recent first. An empty ref means the
// whole history.
func (r *Repo) Subjects(ctx context.Context, since, path string) ([]string, error) {
	args := []string{"log"}
	if since != "" {
		args = append(args, since+"..HEAD")
	}
	args = append(args, "--pretty=format:%s", "--", strings.TrimSuffix(path, "/")+"/")

	output, err := r.output(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get commits: %w", err)
	}
	return lines(output), nil
}

// Add stages paths
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	_, err := r.output(ctx, append([]string{"add"}, paths...)...)
	return err
}

// Commit records staged changes with message
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.output(ctx, "commit", "-m", message)
	return err
}

// CreateTag creates a lightweight tag, or an annotated one when annotated is set.
func (r *Repo) CreateTag(ctx context.Context, name, message string, annotated bool) error {
	args := []string{"tag"}
	if annotated {
		args = append(args, "-a", "-m", message)
	}
	_, err := r.output(ctx, append(args, name)...)
	return err
}

// Push pushes the current branch. An empty remote uses git's default.
func (r *Repo) Push(ctx context.Context, remote string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote)
	}
	return r.runner.Run(ctx, r.dir, r.binary, args...)
}

// PushTags pushes all tags
func (r *Repo) PushTags(ctx context.Context, remote string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote)
	}
	return r.runner.Run(ctx, r.dir, r.binary, append(args, "--tags")...)
}

func (r *Repo) output(ctx context.Context, args ...string) (string, error) {
	return r.runner.Output(ctx, r.dir, r.binary, args...)
}

// lines splits command output into trimmed, non-empty lines
func lines(output string) []string {
	var result []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		result = append(result, line)
	}
	return result
}
