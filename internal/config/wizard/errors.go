package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errProjectNameRequired = errors.New("project name is required")
	errProjectNameInvalid  = errors.New("project name must be 1-32 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
	errPortInvalid         = errors.New("port must be between 1 and 65535")
)
