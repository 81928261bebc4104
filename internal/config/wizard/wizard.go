package wizard

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/charmbracelet/huh"
)

// projectNameRegex validates project name format: 1-32 lowercase alphanumeric with hyphens.
var projectNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Project identity
	ProjectName string

	// Core VM
	CoreMachineType string

	// Apps VM (optional)
	AddAppsVM       bool
	AppsMachineType string

	// Addons selected from the catalog
	Addons []string

	// Forgejo
	ForgejoOrg  string
	ForgejoRepo string

	// Monitoring
	MonitoringEnabled bool
	MonitoringPort    int
}

// RunWizard runs the interactive project wizard. The addonNames list is the
// available catalog; an empty list skips the addon group. The context is used
// for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, addonNames []string) (*Result, error) {
	result := &Result{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("project identity: %w", err)
	}
	if err := runVMsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("virtual machines: %w", err)
	}
	if len(addonNames) > 0 {
		if err := runAddonsGroup(ctx, result, addonNames); err != nil {
			return nil, fmt.Errorf("addons: %w", err)
		}
	}
	if err := runForgejoGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("forgejo: %w", err)
	}
	if err := runMonitoringGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}

	return result, nil
}

// runIdentityGroup prompts for the project name.
func runIdentityGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Description("1-32 lowercase alphanumeric characters or hyphens").
				Placeholder("my-project").
				Value(&result.ProjectName).
				Validate(validateProjectName),
		).Title("Project Identity"),
	).RunWithContext(ctx)
}

// runVMsGroup prompts for the core VM and an optional apps VM.
func runVMsGroup(ctx context.Context, result *Result) error {
	result.CoreMachineType = MachineTypes[1].Value

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Core VM Type").
				Description("The core VM runs Forgejo and shared addons").
				Options(MachineTypesToOptions()...).
				Value(&result.CoreMachineType),
			huh.NewConfirm().
				Title("Add Apps VM?").
				Description("A dedicated VM for application workloads").
				Value(&result.AddAppsVM),
		).Title("Virtual Machines"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.AddAppsVM {
		result.AppsMachineType = MachineTypes[1].Value
		return huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Apps VM Type").
					Options(MachineTypesToOptions()...).
					Value(&result.AppsMachineType),
			).Title("Apps VM"),
		).RunWithContext(ctx)
	}
	return nil
}

// runAddonsGroup prompts for addon selection from the catalog.
func runAddonsGroup(ctx context.Context, result *Result, addonNames []string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Addons").
				Description("Select addons to deploy alongside your apps").
				Options(AddonsToOptions(addonNames)...).
				Value(&result.Addons),
		).Title("Addons"),
	).RunWithContext(ctx)
}

// runForgejoGroup prompts for the Forgejo organization and repository.
func runForgejoGroup(ctx context.Context, result *Result) error {
	result.ForgejoOrg = "platform"
	result.ForgejoRepo = "deploy"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Forgejo Organization").
				Value(&result.ForgejoOrg),
			huh.NewInput().
				Title("Forgejo Repository").
				Description("Repository holding the deployment manifests").
				Value(&result.ForgejoRepo),
		).Title("Forgejo"),
	).RunWithContext(ctx)
}

// runMonitoringGroup prompts for monitoring settings.
func runMonitoringGroup(ctx context.Context, result *Result) error {
	result.MonitoringPort = 9090
	port := strconv.Itoa(result.MonitoringPort)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable Monitoring?").
				Value(&result.MonitoringEnabled),
			huh.NewInput().
				Title("Monitoring Port").
				Value(&port).
				Validate(validatePort),
		).Title("Monitoring"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.MonitoringPort, _ = strconv.Atoi(port)
	return nil
}

// validateProjectName validates the project name format.
func validateProjectName(s string) error {
	if s == "" {
		return errProjectNameRequired
	}
	if !projectNameRegex.MatchString(s) {
		return errProjectNameInvalid
	}
	return nil
}

// validatePort validates a TCP port number.
func validatePort(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return errPortInvalid
	}
	return nil
}
