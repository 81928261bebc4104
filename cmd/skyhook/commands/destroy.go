package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyhook-sh/skyhook/cmd/skyhook/handlers"
)

// Destroy returns the command for tearing down a project's planning state.
func Destroy() *cobra.Command {
	paths := handlers.DefaultPaths()
	var force bool

	cmd := &cobra.Command{
		Use:   "destroy <project>",
		Short: "Release a project's subnets and reset its planning state",
		Long: `Release a project's subnets and reset its planning state.

Removes the project's subnet allocations from the shared table and deletes
its deployment snapshot. The next apply treats the project as a first run.
The configuration file is left in place.

Examples:
  skyhook destroy acme
  skyhook destroy acme --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.Destroy(paths, args[0], force)
		},
	}

	bindWorkspaceFlags(cmd, &paths)
	cmd.Flags().StringVar(&paths.Subnets, "subnets", paths.Subnets, "Path to the subnet allocation table")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}
