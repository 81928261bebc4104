package handlers

import (
	"fmt"

	"github.com/skyhook-sh/skyhook/internal/ui"
	"github.com/skyhook-sh/skyhook/internal/validate"
)

// Validate runs the validation engine against one project configuration and
// renders the report. It returns an error when any error-severity issue was
// found; warnings alone do not fail the command.
func Validate(paths Paths) error {
	cfg, _, err := loadProject(paths.Config)
	if err != nil {
		return err
	}

	issues, err := runValidation(cfg, paths)
	if err != nil {
		return err
	}

	fmt.Print(ui.RenderIssues(cfg.Name, issues))

	if validate.HasErrors(issues) {
		return fmt.Errorf("validation failed for project %s", cfg.Name)
	}
	return nil
}
