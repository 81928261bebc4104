// Package validate checks a project configuration against its resolved
// addon set and against every other project sharing the orchestrator's
// address space.
//
// Validation never short-circuits: every check is independent and additive,
// so the caller always sees the complete list of problems in one pass. Only
// error-severity issues block a deployment; warnings are informational.
package validate
