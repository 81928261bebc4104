package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ToolRunner invokes an external tool. Provisioning, host configuration, and
// secret sync all happen in external tooling; the pipeline only decides when
// to call them.
type ToolRunner interface {
	Run(ctx context.Context, tool string, args ...string) error
}

// ExecRunner runs tools as subprocesses, streaming their output.
type ExecRunner struct {
	// Dir is the working directory for invoked tools. Empty means the
	// current directory.
	Dir string
}

// Run implements ToolRunner.
func (r *ExecRunner) Run(ctx context.Context, tool string, args ...string) error {
	cmd := exec.CommandContext(ctx, tool, args...) // #nosec G204
	cmd.Dir = r.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", tool, err)
	}
	return nil
}
