package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oarkflow/modrel/internal/release"
)

var releaseCmd = &cobra.Command{
	Use:   "release <module>",
	Short: "Release a module with the external bump tool",
	Long: `Release a module by delegating to an external bump tool.

The module's changelog file is created if it does not exist, then the
configured tool (default: cz bump --yes --changelog) runs inside the
module directory with --tag-format <module>/v$version.

Versioning, changelog generation and tagging are left to the tool.
A failing tool fails the release.`,
	Args:              moduleArg,
	ValidArgsFunction: completeModules,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		r := release.NewExternal(cfg, newRunner(cfg.BumpTool.Env), repoDir)
		if err := r.Release(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("release failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Module %s released successfully\n", args[0])
		return nil
	},
}
