// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyhook-sh/skyhook/cmd/skyhook/handlers"
)

// Root returns the root command for the skyhook CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skyhook",
		Short: "Provision multi-tenant application platforms",
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Addons())
	cmd.AddCommand(Version())

	return cmd
}

// bindWorkspaceFlags registers the shared workspace layout flags.
func bindWorkspaceFlags(cmd *cobra.Command, paths *handlers.Paths) {
	cmd.Flags().StringVar(&paths.Catalog, "catalog", paths.Catalog, "Path to the addon catalog directory")
	cmd.Flags().StringVar(&paths.Projects, "projects-dir", paths.Projects, "Directory of project configuration files")
	cmd.Flags().StringVar(&paths.StateDir, "state-dir", paths.StateDir, "Directory of deployment state snapshots")
}

// bindConfigFlag registers the -c/--config flag.
func bindConfigFlag(cmd *cobra.Command, paths *handlers.Paths) {
	cmd.Flags().StringVarP(&paths.Config, "config", "c", "", "Path to the project configuration file")
}
