package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyhook-sh/skyhook/cmd/skyhook/handlers"
)

// Apply returns the command for deploying a project.
//
// It validates, plans, runs the required phases and records the new
// last-applied snapshot. Provisioning, host configuration and secret sync are
// delegated to external tools.
func Apply() *cobra.Command {
	paths := handlers.DefaultPaths()

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Deploy a project",
		Long: `Deploy a project.

Validates the configuration, computes the change-set against the last applied
snapshot, and runs the phases that change-set requires: generate, provision,
configure, secret-sync. An up-to-date project is a no-op.

Examples:
  # Deploy a project
  skyhook apply -c projects/acme.yaml

  # Re-apply after configuration changes
  skyhook apply -c projects/acme.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), paths)
		},
	}

	bindConfigFlag(cmd, &paths)
	bindWorkspaceFlags(cmd, &paths)
	cmd.Flags().StringVar(&paths.OutDir, "out-dir", paths.OutDir, "Root directory for generated artifacts")

	return cmd
}
