package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyhook-sh/skyhook/cmd/skyhook/handlers"
)

// Plan returns the command for previewing deployment changes.
func Plan() *cobra.Command {
	paths := handlers.DefaultPaths()

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what an apply would change",
		Long: `Show what an apply would change.

Compares the configuration against the last applied snapshot and prints the
added, removed and modified VMs, addons and apps, together with the phases a
deployment would run. Nothing is executed and no state is written.

Examples:
  skyhook plan -c projects/acme.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Plan(paths)
		},
	}

	bindConfigFlag(cmd, &paths)
	bindWorkspaceFlags(cmd, &paths)

	return cmd
}
