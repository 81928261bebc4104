// Package ui renders validation reports and deployment plans for the
// terminal.
package ui
