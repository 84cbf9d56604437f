/*
Package config provides configuration loading and validation for modrel.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/modrel/internal/conventional"
)

// DefaultFile is the configuration file looked up in the repository root
const DefaultFile = ".modrel.yaml"

// Config represents the complete modrel configuration
type Config struct {
	// Version of the configuration schema
	Version int `yaml:"version"`

	// Include other configuration files
	Includes []string `yaml:"includes,omitempty"`

	// Git configuration
	Git GitConfig `yaml:"git,omitempty"`

	// Files holds the per-module file names
	Files Files `yaml:"files,omitempty"`

	// BumpTool is the external tool used by "modrel release"
	BumpTool BumpTool `yaml:"bump_tool,omitempty"`

	// Changelog configuration
	Changelog Changelog `yaml:"changelog,omitempty"`
}

// GitConfig configures git invocations
type GitConfig struct {
	// Binary is the git executable
	Binary string `yaml:"binary,omitempty"`

	// Remote to push to; empty uses git's default
	Remote string `yaml:"remote,omitempty"`

	// AnnotatedTags creates annotated release tags instead of lightweight ones
	AnnotatedTags bool `yaml:"annotated_tags,omitempty"`
}

// Files are paths relative to the module directory
type Files struct {
	Version   string `yaml:"version,omitempty"`
	Changelog string `yaml:"changelog,omitempty"`
}

// BumpTool describes the external version bump command
type BumpTool struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
	Env     []string `yaml:"env,omitempty"`
}

// Changelog configures changelog sections
type Changelog struct {
	Sections []conventional.Type `yaml:"sections,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Version: 1,
		Git: GitConfig{
			Binary: "git",
		},
		Files: Files{
			Version:   "version.txt",
			Changelog: "CHANGELOG.md",
		},
		BumpTool: BumpTool{
			Command: "cz",
			Args:    []string{"bump", "--yes", "--changelog"},
		},
		Changelog: Changelog{
			Sections: append([]conventional.Type(nil), conventional.DefaultTypes...),
		},
	}
}

// Load loads configuration from a file and fills unset fields with defaults
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	return cfg, nil
}

// Find loads path, or DefaultFile inside dir when path is empty. A missing
// DefaultFile yields the defaults; a missing explicit path is an error.
func Find(dir, path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	path = filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	return Load(path)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Process includes
	baseDir := filepath.Dir(path)
	for _, include := range cfg.Includes {
		includePath := include
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(baseDir, include)
		}

		// Support glob patterns
		matches, err := filepath.Glob(includePath)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %s: %w", include, err)
		}

		for _, match := range matches {
			includeCfg, err := load(match)
			if err != nil {
				return nil, fmt.Errorf("failed to load include %s: %w", match, err)
			}

			if err := mergo.Merge(&cfg, includeCfg, mergo.WithAppendSlice); err != nil {
				return nil, fmt.Errorf("failed to merge include %s: %w", match, err)
			}
		}
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Git.Binary == "" {
		return fmt.Errorf("git.binary is required")
	}
	if c.BumpTool.Command == "" {
		return fmt.Errorf("bump_tool.command is required")
	}

	for name, file := range map[string]string{"files.version": c.Files.Version, "files.changelog": c.Files.Changelog} {
		if file == "" {
			return fmt.Errorf("%s is required", name)
		}
		if filepath.IsAbs(file) || strings.HasPrefix(filepath.Clean(file), "..") {
			return fmt.Errorf("%s must be relative to the module directory: %s", name, file)
		}
	}

	seen := make(map[string]bool)
	for i, s := range c.Changelog.Sections {
		if s.Name == "" {
			return fmt.Errorf("changelog.sections[%d].type is required", i)
		}
		if s.Title == "" {
			return fmt.Errorf("changelog.sections[%d].title is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate changelog section type: %s", s.Name)
		}
		seen[s.Name] = true
	}

	return nil
}

// DefaultTemplate returns the default configuration template
func DefaultTemplate() string {
	return `# modrel configuration file

version: 1

git:
  binary: git
  # remote: origin
  annotated_tags: false

# File names inside each module directory
files:
  version: version.txt
  changelog: CHANGELOG.md

# External tool used by "modrel release <module>".
# "--tag-format <module>/v$version" is appended automatically.
bump_tool:
  command: cz
  args: [bump, --yes, --changelog]

# Commit types rendered by "modrel bump <module>", in order
changelog:
  sections:
    - type: feat
      title: Features
    - type: fix
      title: Fixes
    - type: chore
      title: Chores
    - type: refactor
      title: Refactors
`
}
