// Package addon loads addon definitions from the addon catalog and resolves
// the dependency closure of a project's addon selection.
//
// An addon is a directory holding four files: addon.yaml (metadata),
// compose.yaml.tmpl (deployment fragment template), env.yaml (environment
// variable schema) and tasks.yaml (provisioning task fragments). Definitions
// are immutable once loaded and cached per [Loader], so a loader instance is
// scoped to exactly one planning run.
package addon
