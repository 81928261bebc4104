package handlers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/pipeline"
	"github.com/skyhook-sh/skyhook/internal/state"
	"github.com/skyhook-sh/skyhook/internal/ui"
	"github.com/skyhook-sh/skyhook/internal/validate"
)

// Apply plans the project and executes the required phases: artifact
// generation in-process, provisioning, configuration and secret sync through
// external tools. On success the new snapshot becomes the last-applied state.
func Apply(ctx context.Context, paths Paths) error {
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
	if !cs.HasChanges() {
		return nil
	}

	outDir := filepath.Join(paths.OutDir, cfg.Name)
	phases := pipeline.BuildPhases(&cs, addon.NewLoader(paths.Catalog))
	pctx := pipeline.NewContext(ctx, cfg, &cs, newToolRunner(outDir), outDir)
	if err := pipeline.NewPipeline(phases...).Run(pctx); err != nil {
		return err
	}

	if err := state.NewStore(paths.StateDir).Save(cfg, source); err != nil {
		return fmt.Errorf("deployment succeeded but saving state failed: %w", err)
	}

	fmt.Printf("\nApplied project %s\n", cfg.Name)
	return nil
}
