package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyhook-sh/skyhook/internal/config"
	"github.com/skyhook-sh/skyhook/internal/config/wizard"
	"github.com/skyhook-sh/skyhook/internal/subnet"
)

func withWizardResult(t *testing.T, result *wizard.Result) {
	t.Helper()
	orig := runWizard
	runWizard = func(context.Context, []string) (*wizard.Result, error) { return result, nil }
	t.Cleanup(func() { runWizard = orig })
}

func TestInit_WritesConfigAndKeys(t *testing.T) {
	paths := testPaths(t, validProjectYAML)
	writeCatalogAddon(t, paths.Catalog, "postgres")
	withWizardResult(t, &wizard.Result{
		ProjectName:     "newproj",
		CoreMachineType: "cx32",
		Addons:          []string{"postgres"},
		ForgejoOrg:      "platform",
		ForgejoRepo:     "deploy",
	})

	require.NoError(t, Init(context.Background(), paths))

	cfgPath := filepath.Join(paths.Projects, "newproj.yaml")
	cfg, err := config.LoadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "newproj", cfg.Name)
	// First free index after the orchestrator's reservation.
	assert.Equal(t, "10.1.0.0/16", cfg.Network.Subnet)
	assert.Equal(t, "172.21.0.0/24", cfg.Network.DockerSubnet)
	// Catalog category drove the addon placement.
	assert.Equal(t, "postgres", cfg.Addons["databases"]["postgres"].Type)

	keyData, err := os.ReadFile(cfgPath + ".deploy_key")
	require.NoError(t, err)
	assert.Contains(t, string(keyData), "OPENSSH PRIVATE KEY")
	pubData, err := os.ReadFile(cfgPath + ".deploy_key.pub")
	require.NoError(t, err)
	assert.Contains(t, string(pubData), "ssh-ed25519 ")

	alloc, err := subnet.Open(paths.Subnets)
	require.NoError(t, err)
	_, found := alloc.Lookup("newproj")
	assert.True(t, found)
}

func TestInit_DeclinedOverwrite(t *testing.T) {
	paths := testPaths(t, validProjectYAML)
	withWizardResult(t, &wizard.Result{ProjectName: "newproj", CoreMachineType: "cx32"})

	require.NoError(t, os.MkdirAll(paths.Projects, 0o750))
	existing := filepath.Join(paths.Projects, "newproj.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("project: newproj\n"), 0o600))

	orig := confirmOverwrite
	defer func() { confirmOverwrite = orig }()
	confirmOverwrite = func(string) (bool, error) { return false, nil }

	require.NoError(t, Init(context.Background(), paths))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "project: newproj\n", string(data), "declined overwrite must leave the file untouched")
}
