/*
Package release orchestrates module releases for modrel.

Releaser computes the next version from the module's git history and
performs the release itself. External hands the whole job to a bump tool.
*/
package release

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/oarkflow/modrel/internal/changelog"
	"github.com/oarkflow/modrel/internal/config"
	"github.com/oarkflow/modrel/internal/conventional"
	"github.com/oarkflow/modrel/internal/git"
	"github.com/oarkflow/modrel/internal/runner"
	"github.com/oarkflow/modrel/internal/version"
)

// ErrNoVersionFile is returned when the module has no version file.
var ErrNoVersionFile = version.ErrNotExist

// Options control a release
type Options struct {
	// DryRun computes the release without writing, committing or tagging
	DryRun bool

	// NoPush keeps the release commit and tag local
	NoPush bool
}

// Plan describes a pending module release
type Plan struct {
	Module      string
	PreviousTag string
	Commits     []string
	Current     version.Version
	Next        version.Version
	Level       version.Level
	Tag         string
	Entry       changelog.Entry
}

// Empty reports whether there is nothing to release.
func (p *Plan) Empty() bool {
	return len(p.Commits) == 0
}

// Releaser performs self-contained module releases
type Releaser struct {
	cfg  *config.Config
	repo *git.Repo
	root string

	// Now returns the release date
	Now func() time.Time
}

// New creates a Releaser for the repository at root.
func New(cfg *config.Config, r runner.Runner, root string) *Releaser {
	return &Releaser{
		cfg:  cfg,
		repo: git.New(r, root, cfg.Git.Binary),
		root: root,
		Now:  time.Now,
	}
}

// Plan inspects the module version and history and computes the release.
// The version file is checked before any git command runs.
func (r *Releaser) Plan(ctx context.Context, module string) (*Plan, error) {
	module, err := NormalizeModule(module)
	if err != nil {
		return nil, err
	}

	current, err := version.ReadFile(filepath.Join(moduleDir(r.root, module), r.cfg.Files.Version))
	if err != nil {
		return nil, err
	}

	previousTag, err := r.repo.LatestModuleTag(ctx, module)
	if err != nil {
		return nil, err
	}
	log.Debug("Last release", "module", module, "tag", previousTag)

	commits, err := r.repo.Subjects(ctx, previousTag, module)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Module:      module,
		PreviousTag: previousTag,
		Commits:     commits,
		Current:     current,
	}
	if plan.Empty() {
		return plan, nil
	}

	plan.Level = conventional.Classify(commits)
	plan.Next = current.Bump(plan.Level)
	plan.Tag = git.TagName(module, plan.Next)
	plan.Entry = changelog.Entry{
		Version:  plan.Next.String(),
		Date:     r.Now(),
		Sections: conventional.Sections(commits, module, r.cfg.Changelog.Sections),
	}

	log.Info("Computed release",
		"module", module,
		"commits", len(commits),
		"bump", plan.Level,
		"from", current,
		"to", plan.Next,
	)

	return plan, nil
}

// Release plans and, unless there are no new commits or opts.DryRun is set,
// writes the changelog and version file, commits, tags and pushes.
func (r *Releaser) Release(ctx context.Context, module string, opts Options) (*Plan, error) {
	plan, err := r.Plan(ctx, module)
	if err != nil {
		return nil, err
	}

	if plan.Empty() {
		log.Info("No new commits", "module", plan.Module, "since", plan.PreviousTag)
		return plan, nil
	}
	if opts.DryRun {
		return plan, nil
	}

	dir := moduleDir(r.root, plan.Module)
	if err := changelog.Update(filepath.Join(dir, r.cfg.Files.Changelog), plan.Module, plan.Entry); err != nil {
		return nil, err
	}
	if err := version.WriteFile(filepath.Join(dir, r.cfg.Files.Version), plan.Next); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("chore(%s): release v%s", plan.Module, plan.Next)

	if err := r.repo.Add(ctx,
		path.Join(plan.Module, filepath.ToSlash(r.cfg.Files.Changelog)),
		path.Join(plan.Module, filepath.ToSlash(r.cfg.Files.Version)),
	); err != nil {
		return nil, fmt.Errorf("failed to stage release files: %w", err)
	}
	if err := r.repo.Commit(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to commit release: %w", err)
	}
	if err := r.repo.CreateTag(ctx, plan.Tag, message, r.cfg.Git.AnnotatedTags); err != nil {
		return nil, fmt.Errorf("failed to create tag %s: %w", plan.Tag, err)
	}

	if opts.NoPush {
		log.Warn("Skipping push", "tag", plan.Tag)
		return plan, nil
	}
	if err := r.repo.Push(ctx, r.cfg.Git.Remote); err != nil {
		return nil, fmt.Errorf("failed to push: %w", err)
	}
	if err := r.repo.PushTags(ctx, r.cfg.Git.Remote); err != nil {
		return nil, fmt.Errorf("failed to push tags: %w", err)
	}

	return plan, nil
}
