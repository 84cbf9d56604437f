package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// maxModuleDepth bounds the directory walk for module completion
const maxModuleDepth = 3

// completeModules suggests directories that contain a version file
func completeModules(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return findModules(repoDir, cfg.Files.Version, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// findModules lists module paths under root holding versionFile
func findModules(root, versionFile, prefix string) []string {
	var modules []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || strings.Count(rel, string(filepath.Separator)) >= maxModuleDepth {
			return filepath.SkipDir
		}

		module := filepath.ToSlash(rel)
		if !strings.HasPrefix(module, prefix) {
			return nil
		}
		if _, err := os.Stat(filepath.Join(path, versionFile)); err == nil {
			modules = append(modules, module)
		}
		return nil
	})
	return modules
}

// moduleArg requires exactly one module argument and reports usage otherwise
func moduleArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("requires exactly one <module> argument, received %d\nUsage: %s", len(args), cmd.UseLine())
	}
	return nil
}
