package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyhook-sh/skyhook/cmd/skyhook/handlers"
)

// Validate returns the command for checking a project configuration.
//
// It runs the full validation pass: per-project field checks plus
// cross-project subnet, port and IP conflict detection against the other
// configurations in the projects directory.
func Validate() *cobra.Command {
	paths := handlers.DefaultPaths()

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a project configuration",
		Long: `Validate a project configuration.

All checks run even when earlier ones fail, so the report lists every issue
at once. Errors block deployment; warnings do not.

Examples:
  skyhook validate -c projects/acme.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(paths)
		},
	}

	bindConfigFlag(cmd, &paths)
	bindWorkspaceFlags(cmd, &paths)

	return cmd
}
