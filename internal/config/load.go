package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultMonitoringPort is used when monitoring is enabled without a port.
const DefaultMonitoringPort = 9090

// LoadFile reads and parses a project configuration from a YAML file.
func LoadFile(path string) (*Project, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a project configuration from YAML bytes. Unknown keys are
// rejected so that typos surface at the boundary instead of being silently
// dropped. Scalars convert weakly, so option values like `port: 6379` decode
// into string maps without quoting.
func Parse(data []byte) (*Project, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var project Project
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &project,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode project config: %w", err)
	}

	if project.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	applyDefaults(&project)
	return &project, nil
}

func applyDefaults(p *Project) {
	if p.Monitoring.Enabled && p.Monitoring.Port == 0 {
		p.Monitoring.Port = DefaultMonitoringPort
	}
	for role, vm := range p.VMs {
		if vm.Image == "" {
			vm.Image = "debian-12"
			p.VMs[role] = vm
		}
	}
}
