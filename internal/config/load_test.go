package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
project: acme
network:
  subnet: 10.1.0.0/16
  docker_subnet: 172.21.0.0/24
vms:
  core:
    machine_type: cx32
    disk_size: 80
    ip: 10.1.0.10
    services: [forgejo, monitoring]
  apps:
    machine_type: cx42
    image: ubuntu-24.04
    disk_size: 160
addons:
  databases:
    primary:
      type: postgres
      version: "16"
      plan: small
      options:
        max_connections: "200"
  caches:
    sessions:
      type: redis
apps:
  storefront:
    path: apps/storefront
    vm: apps
    port: 3000
    attachments:
      - addon: databases.primary
        env_prefix: DATABASE
        access: rw
infrastructure:
  forgejo:
    port: 3001
    ssh_port: 2222
    admin_user: admin
    org: acme
    repo: deploy
monitoring:
  enabled: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Name)
	assert.Equal(t, "10.1.0.0/16", cfg.Network.Subnet)
	assert.Equal(t, "cx32", cfg.VMs["core"].MachineType)
	assert.Equal(t, []string{"forgejo", "monitoring"}, cfg.VMs["core"].Services)
	assert.Equal(t, "postgres", cfg.Addons["databases"]["primary"].Type)
	assert.Equal(t, "200", cfg.Addons["databases"]["primary"].Options["max_connections"])
	assert.Equal(t, 3000, cfg.Apps["storefront"].Port)
	assert.Equal(t, "databases.primary", cfg.Apps["storefront"].Attachments[0].Addon)
	assert.Equal(t, 2222, cfg.Infrastructure.Forgejo.SSHPort)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	// Monitoring port defaulted, missing VM image defaulted.
	assert.Equal(t, DefaultMonitoringPort, cfg.Monitoring.Port)
	assert.Equal(t, "debian-12", cfg.VMs["core"].Image)
	assert.Equal(t, "ubuntu-24.04", cfg.VMs["apps"].Image)
}

func TestParse_UnquotedOptionScalars(t *testing.T) {
	cfg, err := Parse([]byte(`project: acme
addons:
  caches:
    sessions:
      type: redis
      options:
        port: 6379
        maxmemory-policy: allkeys-lru
`))
	require.NoError(t, err)

	opts := cfg.Addons["caches"]["sessions"].Options
	assert.Equal(t, "6379", opts["port"])
	assert.Equal(t, "allkeys-lru", opts["maxmemory-policy"])
}

func TestParse_MissingProjectName(t *testing.T) {
	_, err := Parse([]byte("network:\n  subnet: 10.1.0.0/16\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project name is required")
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("project: acme\nnetwrok:\n  subnet: 10.1.0.0/16\n"))
	require.Error(t, err)
}

func TestInstances_Deterministic(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	refs := cfg.Instances()
	require.Len(t, refs, 2)
	assert.Equal(t, "caches.sessions", refs[0].FullName())
	assert.Equal(t, "databases.primary", refs[1].FullName())
}

func TestReferencedAddonTypes(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	cfg.AddonList = []string{"redis", "rabbitmq"}

	assert.Equal(t, []string{"postgres", "rabbitmq", "redis"}, cfg.ReferencedAddonTypes())
}

func TestFindInstance(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	ref, ok := cfg.FindInstance("databases.primary")
	require.True(t, ok)
	assert.Equal(t, "postgres", ref.Instance.Type)

	_, ok = cfg.FindInstance("databases.replica")
	assert.False(t, ok)
}
