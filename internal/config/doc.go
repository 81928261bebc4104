// Package config defines the project configuration model shared by all
// planning and provisioning subsystems.
//
// The [Project] struct is the canonical representation of one project's
// desired state: VM roles, addon instances grouped by category, application
// definitions, the project network, and Forgejo/monitoring settings. It is
// parsed once from YAML at the boundary; unknown or malformed shapes are
// rejected during decoding rather than threaded through as untyped maps.
package config
