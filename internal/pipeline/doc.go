// Package pipeline orchestrates the deployment phases of a project.
//
// A Pipeline runs an ordered list of Phases against a shared Context. Phases
// are selected from the computed change-set: artifact generation runs
// in-process, while provisioning, host configuration, and secret sync are
// delegated to external tools behind the ToolRunner boundary. Every phase
// reports structured events through the Observer.
package pipeline
