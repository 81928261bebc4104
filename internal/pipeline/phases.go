package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/compose"
	"github.com/skyhook-sh/skyhook/internal/state"
)

// Artifact file names written by the generate phase.
const (
	composeFile = "compose.yaml"
	envFile     = "addons.env"
	tasksFile   = "tasks.yaml"
)

// BuildPhases selects the phases a change-set requires, in execution order:
// generate, provision, configure, secret-sync.
func BuildPhases(changes *state.ChangeSet, loader *addon.Loader) []Phase {
	var phases []Phase
	if changes.NeedsGenerate {
		phases = append(phases, &GeneratePhase{Loader: loader})
	}
	if changes.NeedsProvision {
		phases = append(phases, &ToolPhase{name: "provision", tool: "tofu", args: []string{"apply", "-auto-approve"}})
	}
	if changes.NeedsConfigure {
		phases = append(phases, &ToolPhase{name: "configure", tool: "ansible-playbook", args: []string{"site.yaml"}})
	}
	if changes.NeedsSecretSync {
		phases = append(phases, &ToolPhase{name: "secret-sync", tool: "skyhook-secrets", args: []string{"sync"}})
	}
	return phases
}

// GeneratePhase renders the merged deployment artifacts for the project's
// addon instances: the compose descriptor, the environment listing, and the
// task list.
type GeneratePhase struct {
	Loader *addon.Loader
}

// Name implements Phase.
func (p *GeneratePhase) Name() string { return "generate" }

// Run implements Phase.
func (p *GeneratePhase) Run(ctx *Context) error {
	resolved, err := p.Loader.LoadForProject(ctx.Config)
	if err != nil {
		return err
	}

	desc, err := compose.MergeFragments(resolved, ctx.Config)
	if err != nil {
		return err
	}
	data, err := desc.Encode()
	if err != nil {
		return err
	}
	if err := p.write(ctx, composeFile, data); err != nil {
		return err
	}

	env, err := compose.MergeEnvironment(resolved, ctx.Config)
	if err != nil {
		return err
	}
	if err := p.write(ctx, envFile, []byte(env)); err != nil {
		return err
	}

	tasks, err := compose.MergeTasks(resolved, ctx.Config)
	if err != nil {
		return err
	}
	return p.write(ctx, tasksFile, []byte(tasks))
}

func (p *GeneratePhase) write(ctx *Context, name string, data []byte) error {
	if err := os.MkdirAll(ctx.OutDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(ctx.OutDir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	LogArtifactWritten(ctx.Observer, p.Name(), path)
	return nil
}

// ToolPhase delegates a phase to an external tool through the runner.
type ToolPhase struct {
	name string
	tool string
	args []string
}

// Name implements Phase.
func (p *ToolPhase) Name() string { return p.name }

// Run implements Phase.
func (p *ToolPhase) Run(ctx *Context) error {
	LogToolInvoked(ctx.Observer, p.name, p.tool, p.args)
	return ctx.Runner.Run(ctx, p.tool, p.args...)
}
