package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyhook-sh/skyhook/cmd/skyhook/handlers"
)

// Addons returns the command for listing the addon catalog.
func Addons() *cobra.Command {
	paths := handlers.DefaultPaths()

	cmd := &cobra.Command{
		Use:   "addons",
		Short: "List the addon catalog",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Addons(paths)
		},
	}

	cmd.Flags().StringVar(&paths.Catalog, "catalog", paths.Catalog, "Path to the addon catalog directory")

	return cmd
}
