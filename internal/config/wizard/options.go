package wizard

import "github.com/charmbracelet/huh"

// MachineTypeOption represents a selectable VM machine type.
type MachineTypeOption struct {
	Value       string
	Label       string
	Description string
}

// MachineTypes lists the machine types offered by the wizard, smallest first.
var MachineTypes = []MachineTypeOption{
	{Value: "cx22", Label: "cx22", Description: "2 vCPU, 4 GB RAM"},
	{Value: "cx32", Label: "cx32", Description: "4 vCPU, 8 GB RAM"},
	{Value: "cx42", Label: "cx42", Description: "8 vCPU, 16 GB RAM"},
	{Value: "cx52", Label: "cx52", Description: "16 vCPU, 32 GB RAM"},
}

// MachineTypesToOptions converts machine types to huh select options.
func MachineTypesToOptions() []huh.Option[string] {
	options := make([]huh.Option[string], len(MachineTypes))
	for i, mt := range MachineTypes {
		options[i] = huh.NewOption(mt.Label+" - "+mt.Description, mt.Value)
	}
	return options
}

// AddonsToOptions converts catalog addon names to huh multi-select options.
func AddonsToOptions(names []string) []huh.Option[string] {
	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, name)
	}
	return options
}
