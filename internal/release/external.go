package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/oarkflow/modrel/internal/changelog"
	"github.com/oarkflow/modrel/internal/config"
	"github.com/oarkflow/modrel/internal/runner"
)

// External delegates versioning, changelog and tagging to an external bump
// tool, scoped to the module directory.
type External struct {
	cfg    *config.Config
	runner runner.Runner
	root   string
}

// NewExternal creates an External releaser for the repository at root.
func NewExternal(cfg *config.Config, r runner.Runner, root string) *External {
	return &External{
		cfg:    cfg,
		runner: r,
		root:   root,
	}
}

// Release ensures the module changelog exists and runs the bump tool in the
// module directory.
func (e *External) Release(ctx context.Context, module string) error {
	module, err := NormalizeModule(module)
	if err != nil {
		return err
	}

	dir := moduleDir(e.root, module)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("module %s: %w", module, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("module %s is not a directory", module)
	}

	log.Info("Releasing module", "module", module)

	if err := changelog.Touch(filepath.Join(dir, e.cfg.Files.Changelog)); err != nil {
		return err
	}

	args := append([]string(nil), e.cfg.BumpTool.Args...)
	args = append(args, "--tag-format", module+"/v$version")

	if err := e.runner.Run(ctx, dir, e.cfg.BumpTool.Command, args...); err != nil {
		return fmt.Errorf("bump tool failed: %w", err)
	}

	return nil
}
