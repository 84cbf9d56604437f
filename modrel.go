/*
Package modrel provides per-module release automation for monorepos.

A module is a subdirectory holding a version file and a changelog. modrel
releases one module at a time and tags it as <module>/v<version>:
  - "release" delegates bumping, changelog and tagging to an external tool
    (commitizen by default), run inside the module directory
  - "bump" derives the next version from conventional commits touching the
    module, prepends a changelog entry, then commits, tags and pushes

# Configuration

An optional .modrel.yaml in the repository root overrides the git binary,
the push remote, file names, the external bump tool and the changelog
sections. Environment variables are expanded and includes are merged.

# Usage

	modrel release services/api          # cz bump inside services/api
	modrel bump services/api             # self-contained release
	modrel bump services/api --dry-run   # show the computed release
	modrel changelog services/api        # preview the next changelog entry
*/
package modrel

// Version is the current version of modrel
const Version = "1.0.0"

// BuildDate is set at build time
var BuildDate string

// GitCommit is set at build time
var GitCommit string
