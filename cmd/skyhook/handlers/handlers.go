// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/config"
	"github.com/skyhook-sh/skyhook/internal/pipeline"
	"github.com/skyhook-sh/skyhook/internal/state"
	"github.com/skyhook-sh/skyhook/internal/validate"
)

// Paths bundles the filesystem locations a handler works with.
type Paths struct {
	// Config is the project configuration file.
	Config string
	// Catalog is the addon catalog directory.
	Catalog string
	// Projects is the directory of persisted project configurations, used
	// for cross-project validation.
	Projects string
	// StateDir holds last-applied deployment snapshots.
	StateDir string
	// Subnets is the subnet allocation table file.
	Subnets string
	// OutDir is the root directory for generated artifacts.
	OutDir string
}

// DefaultPaths returns the conventional workspace layout.
func DefaultPaths() Paths {
	return Paths{
		Catalog:  "addons",
		Projects: "projects",
		StateDir: filepath.Join(".skyhook", "state"),
		Subnets:  filepath.Join(".skyhook", "subnets.yaml"),
		OutDir:   filepath.Join(".skyhook", "out"),
	}
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newToolRunner creates the external tool boundary for the pipeline.
	newToolRunner = func(dir string) pipeline.ToolRunner {
		return &pipeline.ExecRunner{Dir: dir}
	}

	// writeFile writes data to a file.
	writeFile = os.WriteFile
)

// loadProject reads the project configuration and keeps the raw source bytes
// for state hashing.
func loadProject(path string) (*config.Project, []byte, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("no config file specified\nRun 'skyhook init' to create one, then pass it with -c")
	}
	source, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read project config: %w", err)
	}
	cfg, err := config.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	return cfg, source, nil
}

// runValidation executes the full validation pass for one project. An absent
// catalog directory downgrades the catalog-dependent checks; a present
// catalog that cannot satisfy the project's addon selection is fatal.
func runValidation(cfg *config.Project, paths Paths) ([]validate.Issue, error) {
	loader := addon.NewLoader(paths.Catalog)

	knownTypes, err := loader.KnownTypes()
	if err != nil {
		knownTypes = nil
	}

	var resolved map[string]*addon.Definition
	var extra []validate.Issue
	if knownTypes != nil {
		closure, err := loader.LoadForProject(cfg)
		var circular *addon.CircularDependencyError
		var notFound *addon.NotFoundError
		var invalid *addon.InvalidDefinitionError
		switch {
		case err == nil:
			resolved = closure
		case errors.As(err, &circular):
			extra = append(extra, validate.Issue{
				Kind:     validate.KindAddonDependency,
				Severity: validate.SeverityError,
				Message:  circular.Error(),
			})
		case errors.As(err, &notFound):
			// Covers transitive dependencies too, which the unknown-addon
			// check never sees.
			extra = append(extra, validate.Issue{
				Kind:     validate.KindUnknownAddon,
				Severity: validate.SeverityError,
				Message:  notFound.Error(),
			})
		case errors.As(err, &invalid):
			extra = append(extra, validate.Issue{
				Kind:     validate.KindInvalidAddon,
				Severity: validate.SeverityError,
				Message:  invalid.Error(),
			})
		default:
			return nil, err
		}
	}

	others, err := config.NewStore(paths.Projects).Others(cfg.Name)
	if err != nil {
		return nil, err
	}

	return append(validate.Validate(cfg, resolved, knownTypes, others), extra...), nil
}

// computePlan diffs the desired configuration against the last applied
// snapshot.
func computePlan(cfg *config.Project, source []byte, paths Paths) state.ChangeSet {
	store := state.NewStore(paths.StateDir)
	return state.DetectChanges(state.DesiredFromConfig(cfg, source), store.Load(cfg.Name))
}
