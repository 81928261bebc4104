package wizard

import (
	"github.com/skyhook-sh/skyhook/internal/config"
	"github.com/skyhook-sh/skyhook/internal/subnet"
)

// Default VM and Forgejo settings applied to wizard-generated projects.
const (
	defaultImage        = "debian-12"
	defaultCoreDiskGB   = 80
	defaultAppsDiskGB   = 160
	defaultForgejoPort  = 3000
	defaultForgejoSSH   = 2222
	defaultForgejoAdmin = "admin"
)

// BuildConfig converts wizard answers into a project configuration. The
// subnets come from the allocator, and categories maps each selected addon
// type to its catalog category (unknown types land in "services").
func BuildConfig(result *Result, subnets subnet.Allocation, categories map[string]string) *config.Project {
	cfg := &config.Project{
		Name: result.ProjectName,
		Network: config.NetworkConfig{
			Subnet:       subnets.VPC,
			DockerSubnet: subnets.Docker,
		},
		VMs: map[string]config.VMConfig{
			"core": {
				MachineType: result.CoreMachineType,
				Image:       defaultImage,
				DiskSize:    defaultCoreDiskGB,
				Services:    []string{"forgejo"},
			},
		},
		Infrastructure: config.InfrastructureConfig{
			Forgejo: config.ForgejoConfig{
				Port:      defaultForgejoPort,
				SSHPort:   defaultForgejoSSH,
				AdminUser: defaultForgejoAdmin,
				Org:       result.ForgejoOrg,
				Repo:      result.ForgejoRepo,
			},
		},
		Monitoring: config.MonitoringConfig{
			Enabled: result.MonitoringEnabled,
			Port:    result.MonitoringPort,
		},
	}

	if result.AddAppsVM {
		cfg.VMs["apps"] = config.VMConfig{
			MachineType: result.AppsMachineType,
			Image:       defaultImage,
			DiskSize:    defaultAppsDiskGB,
		}
	}

	for _, addonType := range result.Addons {
		category := categories[addonType]
		if category == "" {
			category = "services"
		}
		if cfg.Addons == nil {
			cfg.Addons = make(map[string]map[string]config.AddonInstance)
		}
		if cfg.Addons[category] == nil {
			cfg.Addons[category] = make(map[string]config.AddonInstance)
		}
		cfg.Addons[category][addonType] = config.AddonInstance{Type: addonType}
	}

	return cfg
}
