// Package wizard provides the interactive project setup wizard.
//
// It uses charmbracelet/huh for form-based input collection. The entry point
// is RunWizard, which walks through question groups and returns a Result.
// BuildConfig converts a Result into a config.Project, and WriteConfig
// renders the YAML project file with a descriptive header.
package wizard
