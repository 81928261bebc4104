// Package main is the entry point for the skyhook CLI.
//
// skyhook provisions multi-tenant application platforms: it manages per-project
// configurations, allocates non-overlapping subnets, validates projects
// against each other, merges addon deployment templates, and plans which
// deployment phases a configuration change requires.
//
// Commands: init, validate, plan, apply, destroy, addons.
//
// For detailed usage information, run:
//
//	skyhook --help
package main

import (
	"fmt"
	"os"

	"github.com/skyhook-sh/skyhook/cmd/skyhook/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
