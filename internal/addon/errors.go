package addon

import (
	"fmt"
	"strings"
)

// NotFoundError indicates an addon directory or one of its required files
// is missing from the catalog.
type NotFoundError struct {
	Addon string
	Path  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("addon %q not found: missing %s", e.Addon, e.Path)
}

// InvalidDefinitionError indicates an addon's metadata failed validation.
type InvalidDefinitionError struct {
	Addon  string
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("addon %q has an invalid definition: %s", e.Addon, e.Reason)
}

// CircularDependencyError indicates a cycle in the addon "requires" graph.
// Chain holds the dependency path from the first addon on the cycle back to
// itself, for diagnostics.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular addon dependency: %s", strings.Join(e.Chain, " -> "))
}
