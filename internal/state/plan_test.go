package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyhook-sh/skyhook/internal/config"
)

func planConfig() *config.Project {
	return &config.Project{
		Name:    "acme",
		Network: config.NetworkConfig{Subnet: "10.1.0.0/16"},
		VMs: map[string]config.VMConfig{
			"core": {MachineType: "cx32", Image: "debian-12", DiskSize: 80, Services: []string{"forgejo"}},
			"apps": {MachineType: "cx42", Image: "debian-12", DiskSize: 160},
		},
		Addons: map[string]map[string]config.AddonInstance{
			"databases": {"primary": {Type: "postgres", Version: "16"}},
		},
		Apps: map[string]config.AppConfig{
			"web":    {Path: "apps/web", VM: "apps", Port: 3000},
			"api":    {Path: "apps/api", VM: "apps", Port: 3001},
			"worker": {Path: "apps/worker", VM: "apps"},
		},
	}
}

func TestDetectChanges_FirstRun(t *testing.T) {
	desired := DesiredFromConfig(planConfig(), []byte("source"))

	cs := DetectChanges(desired, nil)

	assert.True(t, cs.HasChanges())
	assert.ElementsMatch(t, []string{"apps", "core"}, cs.AddedVMs)
	assert.Equal(t, []string{"databases.primary"}, cs.AddedAddons)
	assert.ElementsMatch(t, []string{"api", "web", "worker"}, cs.AddedApps)
	assert.True(t, cs.NeedsGenerate)
	assert.True(t, cs.NeedsProvision)
	assert.True(t, cs.NeedsConfigure)
	assert.True(t, cs.NeedsSecretSync)
}

func TestDetectChanges_NoChanges(t *testing.T) {
	cfg := planConfig()
	source := []byte("source")
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(cfg, source))

	cs := DetectChanges(DesiredFromConfig(cfg, source), store.Load("acme"))

	assert.False(t, cs.HasChanges())
	assert.False(t, cs.NeedsGenerate)
	assert.False(t, cs.NeedsProvision)
	assert.False(t, cs.NeedsConfigure)
	assert.False(t, cs.NeedsSecretSync)
	assert.False(t, cs.HashChanged)
}

func TestDetectChanges_VMModified(t *testing.T) {
	cfg := planConfig()
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(cfg, []byte("source")))

	vm := cfg.VMs["apps"]
	vm.MachineType = "cx52"
	cfg.VMs["apps"] = vm

	cs := DetectChanges(DesiredFromConfig(cfg, []byte("source")), store.Load("acme"))

	assert.Equal(t, []string{"apps"}, cs.ModifiedVMs)
	assert.True(t, cs.NeedsProvision)
	assert.True(t, cs.NeedsConfigure)
	assert.False(t, cs.NeedsGenerate)
	assert.False(t, cs.NeedsSecretSync)
}

func TestDetectChanges_VMServiceSetModified(t *testing.T) {
	cfg := planConfig()
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(cfg, []byte("source")))

	vm := cfg.VMs["core"]
	vm.Services = []string{"forgejo", "monitoring"}
	cfg.VMs["core"] = vm

	cs := DetectChanges(DesiredFromConfig(cfg, []byte("source")), store.Load("acme"))
	assert.Equal(t, []string{"core"}, cs.ModifiedVMs)
}

func TestDetectChanges_AddonAdded(t *testing.T) {
	cfg := planConfig()
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(cfg, []byte("source")))

	cfg.Addons["caches"] = map[string]config.AddonInstance{"sessions": {Type: "redis"}}

	cs := DetectChanges(DesiredFromConfig(cfg, []byte("source")), store.Load("acme"))

	assert.Equal(t, []string{"caches.sessions"}, cs.AddedAddons)
	assert.True(t, cs.NeedsConfigure)
	assert.True(t, cs.NeedsSecretSync)
	assert.False(t, cs.NeedsProvision)
	assert.False(t, cs.NeedsGenerate)
}

func TestDetectChanges_AppModified(t *testing.T) {
	cfg := planConfig()
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(cfg, []byte("source")))

	app := cfg.Apps["web"]
	app.Port = 3100
	cfg.Apps["web"] = app

	cs := DetectChanges(DesiredFromConfig(cfg, []byte("source")), store.Load("acme"))

	assert.Equal(t, []string{"web"}, cs.ModifiedApps)
	assert.True(t, cs.NeedsGenerate)
	assert.False(t, cs.NeedsSecretSync)
}

func TestDetectChanges_Removals(t *testing.T) {
	cfg := planConfig()
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(cfg, []byte("source")))

	delete(cfg.Apps, "worker")
	delete(cfg.VMs, "apps")

	cs := DetectChanges(DesiredFromConfig(cfg, []byte("source")), store.Load("acme"))

	assert.Equal(t, []string{"worker"}, cs.RemovedApps)
	assert.Equal(t, []string{"apps"}, cs.RemovedVMs)
	assert.True(t, cs.HasChanges())
	assert.True(t, cs.NeedsProvision)
}

func TestDetectChanges_HashMismatchAloneForcesNothing(t *testing.T) {
	cfg := planConfig()
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(cfg, []byte("original source")))

	// Same structure, reformatted source.
	cs := DetectChanges(DesiredFromConfig(cfg, []byte("reformatted  source")), store.Load("acme"))

	assert.True(t, cs.HashChanged)
	assert.False(t, cs.HasChanges())
	assert.False(t, cs.NeedsGenerate)
	assert.False(t, cs.NeedsProvision)
	assert.False(t, cs.NeedsConfigure)
	assert.False(t, cs.NeedsSecretSync)
}
