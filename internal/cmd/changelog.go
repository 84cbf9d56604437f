package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oarkflow/modrel/internal/release"
)

var (
	changelogOutput string
	changelogFormat string
)

var changelogCmd = &cobra.Command{
	Use:   "changelog <module>",
	Short: "Preview the next changelog entry",
	Long: `Preview the changelog entry the next "modrel bump" would write.

This is useful for checking how commits will be grouped before
releasing. Nothing is written to the module or the repository.`,
	Args:              moduleArg,
	ValidArgsFunction: completeModules,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		plan, err := release.New(cfg, newRunner(nil), repoDir).Plan(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to generate changelog: %w", err)
		}
		if plan.Empty() {
			fmt.Fprintf(cmd.OutOrStdout(), "No new commits for %s since %s\n", plan.Module, sinceLabel(plan.PreviousTag))
			return nil
		}

		entry, err := plan.Entry.Format(changelogFormat)
		if err != nil {
			return err
		}

		if changelogOutput != "" {
			if err := os.WriteFile(changelogOutput, []byte(entry), 0644); err != nil {
				return fmt.Errorf("failed to write changelog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Changelog written to %s\n", changelogOutput)
		} else {
			fmt.Fprint(cmd.OutOrStdout(), entry)
		}

		return nil
	},
}

func init() {
	changelogCmd.Flags().StringVarP(&changelogOutput, "output", "o", "", "write changelog to file")
	changelogCmd.Flags().StringVar(&changelogFormat, "format", "markdown", "output format (markdown, json, yaml)")
}
