/*
Package cmd provides the CLI commands for modrel.
*/
package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/modrel/internal/config"
	"github.com/oarkflow/modrel/internal/runner"
)

var (
	cfgFile string
	repoDir string
	verbose bool
	debug   bool
)

// newRunner builds the process runner used by commands
var newRunner = func(env []string) runner.Runner {
	r := runner.New()
	r.Env = env
	return r
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modrel",
	Short: "Release modules of a monorepo",
	Long: `modrel bumps versions, writes changelogs and creates git tags
for a single module (subdirectory) of a monorepo.

Release tags have the form <module>/v<major>.<minor>.<patch>.

Example:
  modrel release services/api      # delegate to the external bump tool
  modrel bump services/api         # compute, commit, tag and push
  modrel bump services/api --dry-run
  modrel changelog services/api    # preview the next entry`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is <dir>/.modrel.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&repoDir, "dir", "C", ".", "repository root")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	// Add subcommands
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(bumpCmd)
	rootCmd.AddCommand(changelogCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if debug {
		log.SetLevel(log.DebugLevel)
	} else if verbose {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// loadConfig loads and validates the configuration for the repository
func loadConfig() (*config.Config, error) {
	cfg, err := config.Find(repoDir, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
