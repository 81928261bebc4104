package config

import (
	"fmt"
	"sort"
)

// Project holds one project's full desired state.
type Project struct {
	Name    string        `mapstructure:"project" yaml:"project"`
	Network NetworkConfig `mapstructure:"network" yaml:"network"`

	// VMs maps a role name (e.g. "core", "apps") to its machine spec.
	VMs map[string]VMConfig `mapstructure:"vms" yaml:"vms,omitempty"`

	// Addons groups addon instances by category, e.g.
	// addons.databases.primary -> {type: postgres, version: "16"}.
	Addons map[string]map[string]AddonInstance `mapstructure:"addons" yaml:"addons,omitempty"`

	// AddonList is the legacy flat selection of addon types, kept for
	// configurations written before categorized instances existed.
	AddonList []string `mapstructure:"addon_list" yaml:"addon_list,omitempty"`

	Apps map[string]AppConfig `mapstructure:"apps" yaml:"apps,omitempty"`

	Infrastructure InfrastructureConfig `mapstructure:"infrastructure" yaml:"infrastructure"`
	Monitoring     MonitoringConfig     `mapstructure:"monitoring" yaml:"monitoring,omitempty"`
}

// NetworkConfig defines the project's address space.
type NetworkConfig struct {
	// Subnet is the VPC-level range allocated to the project (a /16).
	Subnet string `mapstructure:"subnet" yaml:"subnet"`
	// DockerSubnet is the container-network range (a /24).
	DockerSubnet string `mapstructure:"docker_subnet" yaml:"docker_subnet,omitempty"`
}

// VMConfig defines a single VM role.
type VMConfig struct {
	MachineType string   `mapstructure:"machine_type" yaml:"machine_type"`
	Image       string   `mapstructure:"image" yaml:"image"`
	DiskSize    int      `mapstructure:"disk_size" yaml:"disk_size"` // GB
	IP          string   `mapstructure:"ip" yaml:"ip,omitempty"`
	Services    []string `mapstructure:"services" yaml:"services,omitempty"`
}

// AddonInstance is a named, configured use of an addon type within a project.
type AddonInstance struct {
	Type    string            `mapstructure:"type" yaml:"type"`
	Version string            `mapstructure:"version" yaml:"version,omitempty"`
	Plan    string            `mapstructure:"plan" yaml:"plan,omitempty"`
	Options map[string]string `mapstructure:"options" yaml:"options,omitempty"`
}

// InstanceRef pairs an addon instance with its position in the config tree.
type InstanceRef struct {
	Category string
	Name     string
	Instance AddonInstance
}

// FullName returns the instance identity key, unique within a project.
func (r InstanceRef) FullName() string {
	return fmt.Sprintf("%s.%s", r.Category, r.Name)
}

// AppConfig defines one application deployed into the project.
type AppConfig struct {
	Path        string       `mapstructure:"path" yaml:"path"`
	VM          string       `mapstructure:"vm" yaml:"vm"`
	Port        int          `mapstructure:"port" yaml:"port,omitempty"`
	IP          string       `mapstructure:"ip" yaml:"ip,omitempty"`
	Attachments []Attachment `mapstructure:"attachments" yaml:"attachments,omitempty"`
}

// Attachment binds an application to an addon instance by full name.
type Attachment struct {
	Addon     string `mapstructure:"addon" yaml:"addon"`
	EnvPrefix string `mapstructure:"env_prefix" yaml:"env_prefix,omitempty"`
	Access    string `mapstructure:"access" yaml:"access,omitempty"` // ro, rw, admin
}

// InfrastructureConfig holds settings for the shared infrastructure services.
type InfrastructureConfig struct {
	Forgejo ForgejoConfig `mapstructure:"forgejo" yaml:"forgejo"`
}

// ForgejoConfig configures the project's Forgejo instance and CI org/repo.
type ForgejoConfig struct {
	Port      int    `mapstructure:"port" yaml:"port"`
	SSHPort   int    `mapstructure:"ssh_port" yaml:"ssh_port"`
	AdminUser string `mapstructure:"admin_user" yaml:"admin_user"`
	Org       string `mapstructure:"org" yaml:"org"`
	Repo      string `mapstructure:"repo" yaml:"repo"`
}

// MonitoringConfig configures project monitoring.
type MonitoringConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" yaml:"port,omitempty"`
}

// Instances returns every addon instance in deterministic order
// (category, then instance name).
func (p *Project) Instances() []InstanceRef {
	var refs []InstanceRef
	for category, instances := range p.Addons {
		for name, inst := range instances {
			refs = append(refs, InstanceRef{Category: category, Name: name, Instance: inst})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Category != refs[j].Category {
			return refs[i].Category < refs[j].Category
		}
		return refs[i].Name < refs[j].Name
	})
	return refs
}

// ReferencedAddonTypes returns the sorted, de-duplicated set of addon types
// referenced by the categorized section and the legacy flat list.
func (p *Project) ReferencedAddonTypes() []string {
	seen := make(map[string]bool)
	for _, ref := range p.Instances() {
		seen[ref.Instance.Type] = true
	}
	for _, name := range p.AddonList {
		seen[name] = true
	}
	types := make([]string, 0, len(seen))
	for name := range seen {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// FindInstance looks up an addon instance by its full name.
func (p *Project) FindInstance(fullName string) (InstanceRef, bool) {
	for _, ref := range p.Instances() {
		if ref.FullName() == fullName {
			return ref, true
		}
	}
	return InstanceRef{}, false
}
