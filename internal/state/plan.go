package state

import (
	"slices"

	"github.com/skyhook-sh/skyhook/internal/config"
)

// Desired is the plan engine's view of the current configuration: the same
// entity lists a snapshot would hold, plus the source content hash.
type Desired struct {
	VMs        []VMState
	Addons     []AddonState
	Apps       []AppState
	ConfigHash string
}

// DesiredFromConfig derives the desired state from a configuration and its
// raw source bytes.
func DesiredFromConfig(cfg *config.Project, source []byte) *Desired {
	vms, addons, apps := EntitiesFromConfig(cfg)
	return &Desired{VMs: vms, Addons: addons, Apps: apps, ConfigHash: HashConfig(source)}
}

// ChangeSet is the computed difference between desired configuration and
// the last applied snapshot, plus the provisioning phases it requires.
// It is computed, never stored.
type ChangeSet struct {
	AddedVMs    []string
	RemovedVMs  []string
	ModifiedVMs []string

	AddedAddons   []string
	RemovedAddons []string

	AddedApps    []string
	RemovedApps  []string
	ModifiedApps []string

	// Phase gates for the external provisioning tools.
	NeedsGenerate   bool
	NeedsProvision  bool
	NeedsConfigure  bool
	NeedsSecretSync bool

	// HashChanged records a config-source hash mismatch without structural
	// differences. Diagnostic only; it never forces a phase.
	HashChanged bool
}

// HasChanges reports whether any entity difference exists.
func (c *ChangeSet) HasChanges() bool {
	return len(c.AddedVMs) > 0 || len(c.RemovedVMs) > 0 || len(c.ModifiedVMs) > 0 ||
		len(c.AddedAddons) > 0 || len(c.RemovedAddons) > 0 ||
		len(c.AddedApps) > 0 || len(c.RemovedApps) > 0 || len(c.ModifiedApps) > 0
}

// DetectChanges compares the desired configuration against the last applied
// snapshot. A nil snapshot is a first run: everything is added and every
// phase is required.
func DetectChanges(desired *Desired, last *Snapshot) ChangeSet {
	if last == nil {
		cs := ChangeSet{
			NeedsGenerate:   true,
			NeedsProvision:  true,
			NeedsConfigure:  true,
			NeedsSecretSync: true,
		}
		for _, vm := range desired.VMs {
			cs.AddedVMs = append(cs.AddedVMs, vm.Name)
		}
		for _, a := range desired.Addons {
			cs.AddedAddons = append(cs.AddedAddons, a.FullName)
		}
		for _, app := range desired.Apps {
			cs.AddedApps = append(cs.AddedApps, app.Name)
		}
		return cs
	}

	var cs ChangeSet
	diffVMs(&cs, desired.VMs, last.VMs)
	diffAddons(&cs, desired.Addons, last.Addons)
	diffApps(&cs, desired.Apps, last.Apps)

	if len(cs.AddedVMs) > 0 || len(cs.RemovedVMs) > 0 || len(cs.ModifiedVMs) > 0 {
		cs.NeedsProvision = true
		cs.NeedsConfigure = true
	}
	if len(cs.AddedAddons) > 0 || len(cs.AddedApps) > 0 {
		cs.NeedsConfigure = true
		cs.NeedsSecretSync = true
	}
	if len(cs.AddedApps) > 0 || len(cs.ModifiedApps) > 0 {
		cs.NeedsGenerate = true
	}

	cs.HashChanged = desired.ConfigHash != last.ConfigHash
	return cs
}

func diffVMs(cs *ChangeSet, desired, last []VMState) {
	prev := make(map[string]VMState, len(last))
	for _, vm := range last {
		prev[vm.Name] = vm
	}
	seen := make(map[string]bool, len(desired))

	for _, vm := range desired {
		seen[vm.Name] = true
		old, existed := prev[vm.Name]
		if !existed {
			cs.AddedVMs = append(cs.AddedVMs, vm.Name)
			continue
		}
		if vm.MachineType != old.MachineType || vm.DiskSize != old.DiskSize || !slices.Equal(vm.Services, old.Services) {
			cs.ModifiedVMs = append(cs.ModifiedVMs, vm.Name)
		}
	}
	for _, vm := range last {
		if !seen[vm.Name] {
			cs.RemovedVMs = append(cs.RemovedVMs, vm.Name)
		}
	}
}

func diffAddons(cs *ChangeSet, desired, last []AddonState) {
	prev := make(map[string]bool, len(last))
	for _, a := range last {
		prev[a.FullName] = true
	}
	seen := make(map[string]bool, len(desired))

	for _, a := range desired {
		seen[a.FullName] = true
		if !prev[a.FullName] {
			cs.AddedAddons = append(cs.AddedAddons, a.FullName)
		}
	}
	for _, a := range last {
		if !seen[a.FullName] {
			cs.RemovedAddons = append(cs.RemovedAddons, a.FullName)
		}
	}
}

func diffApps(cs *ChangeSet, desired, last []AppState) {
	prev := make(map[string]AppState, len(last))
	for _, app := range last {
		prev[app.Name] = app
	}
	seen := make(map[string]bool, len(desired))

	for _, app := range desired {
		seen[app.Name] = true
		old, existed := prev[app.Name]
		if !existed {
			cs.AddedApps = append(cs.AddedApps, app.Name)
			continue
		}
		if app != old {
			cs.ModifiedApps = append(cs.ModifiedApps, app.Name)
		}
	}
	for _, app := range last {
		if !seen[app.Name] {
			cs.RemovedApps = append(cs.RemovedApps, app.Name)
		}
	}
}
