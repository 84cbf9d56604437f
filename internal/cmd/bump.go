package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oarkflow/modrel/internal/release"
)

var (
	dryRun bool
	noPush bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump <module>",
	Short: "Bump, changelog, commit, tag and push a module",
	Long: `Release a module without external tools.

This:
  - Reads the current version from <module>/version.txt
  - Finds the latest <module>/vX.Y.Z tag
  - Collects commits touching <module>/ since that tag
  - Bumps major for breaking changes, minor for feat(...), else patch
  - Prepends an entry to <module>/CHANGELOG.md
  - Commits, tags <module>/v<new> and pushes branch and tags

Nothing happens when there are no new commits.
Use --dry-run to only print the computed release.`,
	Args:              moduleArg,
	ValidArgsFunction: completeModules,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		r := release.New(cfg, newRunner(nil), repoDir)
		plan, err := r.Release(cmd.Context(), args[0], release.Options{
			DryRun: dryRun,
			NoPush: noPush,
		})
		if err != nil {
			return fmt.Errorf("release failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if plan.Empty() {
			fmt.Fprintf(out, "No new commits for %s since %s\n", plan.Module, sinceLabel(plan.PreviousTag))
			return nil
		}

		if dryRun {
			fmt.Fprintln(out, "Dry run complete, no files were modified.")
		} else {
			fmt.Fprintf(out, "✓ Released %s\n", plan.Tag)
		}
		fmt.Fprintf(out, "Old Version: %s\n", plan.Current)
		fmt.Fprintf(out, "New Version: %s\n", plan.Next)
		fmt.Fprintf(out, "Bump Type:   %s\n", plan.Level)
		fmt.Fprintf(out, "Commits:     %d\n", len(plan.Commits))
		if dryRun {
			fmt.Fprintf(out, "\n%s", plan.Entry.Markdown())
		}

		return nil
	},
}

func sinceLabel(tag string) string {
	if tag == "" {
		return "the beginning of history"
	}
	return tag
}

func init() {
	bumpCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute the release without modifying files or the repository")
	bumpCmd.Flags().BoolVar(&noPush, "no-push", false, "commit and tag locally without pushing")
}
