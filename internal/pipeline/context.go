package pipeline

import (
	"context"

	"github.com/skyhook-sh/skyhook/internal/config"
	"github.com/skyhook-sh/skyhook/internal/state"
)

// Context wraps everything a phase needs: the project configuration, the
// computed change-set, the external tool boundary, and the observer.
type Context struct {
	context.Context
	Config   *config.Project
	Changes  *state.ChangeSet
	Runner   ToolRunner
	Observer Observer

	// OutDir is where generated artifacts are written and where external
	// tools are pointed at.
	OutDir string
}

// NewContext creates a pipeline context with a console observer.
func NewContext(ctx context.Context, cfg *config.Project, changes *state.ChangeSet, runner ToolRunner, outDir string) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Changes:  changes,
		Runner:   runner,
		Observer: NewConsoleObserver().WithFields(map[string]string{"project": cfg.Name}),
		OutDir:   outDir,
	}
}
