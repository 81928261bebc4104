package validate

import "fmt"

// Severity classifies an issue. Errors block deployment, warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue kinds, one per check family.
const (
	KindMissingField    = "missing_field"
	KindInvalidPort     = "invalid_port"
	KindVMResources     = "vm_resources"
	KindUnknownAddon    = "unknown_addon"
	KindInvalidAddon    = "invalid_addon"
	KindSubnetConflict  = "subnet_conflict"
	KindPortConflict    = "port_conflict"
	KindIPConflict      = "ip_conflict"
	KindAddonDependency = "addon_dependency"
	KindAddonConflict   = "addon_conflict"
	KindUnattachedAddon = "unattached_addon"
)

// Issue is one validation finding.
type Issue struct {
	Kind     string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Kind, i.Message)
}

// HasErrors reports whether any issue in the list is error-severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func errorf(kind, format string, args ...any) Issue {
	return Issue{Kind: kind, Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

func warnf(kind, format string, args ...any) Issue {
	return Issue{Kind: kind, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}
