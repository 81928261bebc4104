package ui

import (
	"fmt"
	"strings"

	"github.com/skyhook-sh/skyhook/internal/state"
	"github.com/skyhook-sh/skyhook/internal/validate"
)

// RenderIssues formats a validation report for one project.
func RenderIssues(project string, issues []validate.Issue) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Validation: %s", project)))
	b.WriteString("\n")

	if len(issues) == 0 {
		b.WriteString(okStyle.Render(checkMark) + " configuration is valid\n")
		return b.String()
	}

	var errs, warns int
	for _, issue := range issues {
		switch issue.Severity {
		case validate.SeverityError:
			errs++
			b.WriteString(errorStyle.Render(crossMark))
		case validate.SeverityWarning:
			warns++
			b.WriteString(warningStyle.Render(warnMark))
		}
		b.WriteString(fmt.Sprintf(" %s %s\n", dimStyle.Render(issue.Kind), issue.Message))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)))
	b.WriteString("\n")
	return b.String()
}

// RenderPlan formats a change-set and the phases it requires.
func RenderPlan(project string, cs *state.ChangeSet) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Plan: %s", project)))
	b.WriteString("\n")

	if !cs.HasChanges() {
		b.WriteString(okStyle.Render(checkMark) + " no changes, deployment is up to date\n")
		if cs.HashChanged {
			b.WriteString(dimStyle.Render("note: config file changed without structural differences") + "\n")
		}
		return b.String()
	}

	renderEntitySection(&b, "VMs", cs.AddedVMs, cs.RemovedVMs, cs.ModifiedVMs)
	renderEntitySection(&b, "Addons", cs.AddedAddons, cs.RemovedAddons, nil)
	renderEntitySection(&b, "Apps", cs.AddedApps, cs.RemovedApps, cs.ModifiedApps)

	b.WriteString(sectionStyle.Render("Phases"))
	b.WriteString("\n")
	for _, phase := range []struct {
		name   string
		needed bool
	}{
		{"generate", cs.NeedsGenerate},
		{"provision", cs.NeedsProvision},
		{"configure", cs.NeedsConfigure},
		{"secret-sync", cs.NeedsSecretSync},
	} {
		if phase.needed {
			b.WriteString(fmt.Sprintf("  %s %s\n", okStyle.Render("run"), phase.name))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  skip %s", phase.name)) + "\n")
		}
	}
	return b.String()
}

func renderEntitySection(b *strings.Builder, title string, added, removed, modified []string) {
	if len(added)+len(removed)+len(modified) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	for _, name := range added {
		b.WriteString(okStyle.Render("  + "+name) + "\n")
	}
	for _, name := range removed {
		b.WriteString(errorStyle.Render("  - "+name) + "\n")
	}
	for _, name := range modified {
		b.WriteString(warningStyle.Render("  ~ "+name) + "\n")
	}
}
