package state

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skyhook-sh/skyhook/internal/config"
)

// VMState is the persisted form of one VM role.
type VMState struct {
	Name        string   `yaml:"name"`
	MachineType string   `yaml:"machineType"`
	DiskSize    int      `yaml:"diskSize"`
	Services    []string `yaml:"services,omitempty"`
}

// AddonState is the persisted form of one addon instance.
type AddonState struct {
	FullName string `yaml:"fullName"`
	Type     string `yaml:"type"`
	Version  string `yaml:"version,omitempty"`
}

// AppState is the persisted form of one application.
type AppState struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	VM   string `yaml:"vm"`
	Port int    `yaml:"port,omitempty"`
}

// Snapshot is one project's last-applied deployment state.
type Snapshot struct {
	VMs        []VMState    `yaml:"vms"`
	Addons     []AddonState `yaml:"addons"`
	Apps       []AppState   `yaml:"apps"`
	Timestamp  time.Time    `yaml:"timestamp"`
	ConfigHash string       `yaml:"configHash"`
}

// snapshotFile is the on-disk wrapper.
type snapshotFile struct {
	LastApplied Snapshot `yaml:"lastApplied"`
}

// EntitiesFromConfig derives the sorted entity lists for a configuration.
func EntitiesFromConfig(cfg *config.Project) ([]VMState, []AddonState, []AppState) {
	var vms []VMState
	for name, vm := range cfg.VMs {
		services := append([]string(nil), vm.Services...)
		sort.Strings(services)
		vms = append(vms, VMState{Name: name, MachineType: vm.MachineType, DiskSize: vm.DiskSize, Services: services})
	}
	sort.Slice(vms, func(i, j int) bool { return vms[i].Name < vms[j].Name })

	var addons []AddonState
	for _, ref := range cfg.Instances() {
		addons = append(addons, AddonState{FullName: ref.FullName(), Type: ref.Instance.Type, Version: ref.Instance.Version})
	}

	var apps []AppState
	for name, app := range cfg.Apps {
		apps = append(apps, AppState{Name: name, Path: app.Path, VM: app.VM, Port: app.Port})
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })

	return vms, addons, apps
}

// HashConfig computes the content hash of a configuration source.
func HashConfig(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Store reads and writes snapshots, one <project>.yaml per project.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a snapshot store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Path returns the snapshot file path for a project.
func (s *Store) Path(project string) string {
	return filepath.Join(s.dir, project+".yaml")
}

// Load reads a project's snapshot. A missing or unreadable snapshot yields
// nil, meaning "first run"; the plan engine never fails on state.
func (s *Store) Load(project string) *Snapshot {
	data, err := os.ReadFile(s.Path(project)) // #nosec G304
	if err != nil {
		return nil
	}
	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil
	}
	return &file.LastApplied
}

// Save persists the desired configuration as the new last-applied snapshot.
// It is the only mutator of persisted state.
func (s *Store) Save(cfg *config.Project, source []byte) error {
	vms, addons, apps := EntitiesFromConfig(cfg)
	snapshot := Snapshot{
		VMs:        vms,
		Addons:     addons,
		Apps:       apps,
		Timestamp:  s.now().UTC(),
		ConfigHash: HashConfig(source),
	}

	data, err := yaml.Marshal(&snapshotFile{LastApplied: snapshot})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for %s: %w", cfg.Name, err)
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	if err := os.WriteFile(s.Path(cfg.Name), data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot for %s: %w", cfg.Name, err)
	}
	return nil
}

// Delete removes a project's snapshot, fully resetting its planning
// history. Missing files are not an error.
func (s *Store) Delete(project string) error {
	err := os.Remove(s.Path(project))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot for %s: %w", project, err)
	}
	return nil
}
