package handlers

import (
	"fmt"

	"github.com/skyhook-sh/skyhook/internal/ui"
	"github.com/skyhook-sh/skyhook/internal/validate"
)

// Plan validates the project, diffs it against the last applied snapshot,
// and prints the resulting change-set and required phases. Nothing is
// executed and no state is written.
func Plan(paths Paths) error {
	cfg, source, err := loadProject(paths.Config)
	if err != nil {
		return err
	}

	issues, err := runValidation(cfg, paths)
	if err != nil {
		return err
	}
	if validate.HasErrors(issues) {
		fmt.Print(ui.RenderIssues(cfg.Name, issues))
		return fmt.Errorf("validation failed for project %s", cfg.Name)
	}

	cs := computePlan(cfg, source, paths)
	fmt.Print(ui.RenderPlan(cfg.Name, &cs))
	return nil
}
