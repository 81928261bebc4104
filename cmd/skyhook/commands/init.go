package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyhook-sh/skyhook/cmd/skyhook/handlers"
)

// Init returns the command for creating a new project interactively.
//
// The wizard walks through project identity, VM sizing, addon selection, and
// infrastructure settings, then allocates subnets, writes the project YAML
// and generates a deploy key.
func Init() *cobra.Command {
	paths := handlers.DefaultPaths()

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new project configuration interactively",
		Long: `Create a new project configuration interactively.

The wizard asks for the project name, VM sizing, addons from the catalog, and
Forgejo settings. It assigns the project's VPC and Docker subnets from the
shared allocation table and writes the configuration plus a deploy key pair
into the projects directory.

Examples:
  # Create a new project
  skyhook init

  # Use a custom addon catalog
  skyhook init --catalog ./my-addons`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), paths)
		},
	}

	bindWorkspaceFlags(cmd, &paths)
	cmd.Flags().StringVar(&paths.Subnets, "subnets", paths.Subnets, "Path to the subnet allocation table")

	return cmd
}
