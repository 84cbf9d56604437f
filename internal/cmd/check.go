package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oarkflow/modrel"
	"github.com/oarkflow/modrel/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration file",
	Long: `Check if the configuration file is valid.

This validates:
  - YAML syntax
  - Include statements
  - Required fields
  - Changelog sections`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = filepath.Join(repoDir, config.DefaultFile)
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", configPath)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration file %s is valid\n", configPath)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Long: `Initialize a new .modrel.yaml configuration file.

This creates a configuration file holding the defaults that you can
customize for your repository.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := filepath.Join(repoDir, config.DefaultFile)
		if cfgFile != "" {
			configPath = cfgFile
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}

		if err := os.WriteFile(configPath, []byte(config.DefaultTemplate()), 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", configPath)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit, and build date of modrel.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "modrel %s\n", modrel.Version)
		if modrel.GitCommit != "" {
			fmt.Fprintf(out, "  commit: %s\n", modrel.GitCommit)
		}
		if modrel.BuildDate != "" {
			fmt.Fprintf(out, "  built:  %s\n", modrel.BuildDate)
		}
	},
}
