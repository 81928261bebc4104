package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validProjectYAML = `project: acme
network:
  subnet: 10.1.0.0/16
  docker_subnet: 172.21.0.0/24
vms:
  core:
    machine_type: cx32
    disk_size: 80
    services: [forgejo]
addons:
  databases:
    primary:
      type: postgres
      version: "16"
infrastructure:
  forgejo:
    port: 3000
    ssh_port: 2222
    admin_user: admin
    org: platform
    repo: deploy
`

// testPaths builds a throwaway workspace with the given project config.
func testPaths(t *testing.T, configYAML string) Paths {
	t.Helper()
	dir := t.TempDir()

	paths := Paths{
		Config:   filepath.Join(dir, "acme.yaml"),
		Catalog:  filepath.Join(dir, "addons"),
		Projects: filepath.Join(dir, "projects"),
		StateDir: filepath.Join(dir, "state"),
		Subnets:  filepath.Join(dir, "subnets.yaml"),
		OutDir:   filepath.Join(dir, "out"),
	}
	require.NoError(t, os.WriteFile(paths.Config, []byte(configYAML), 0o600))
	return paths
}

// writeCatalogAddon drops a minimal addon definition into the catalog.
func writeCatalogAddon(t *testing.T, catalog, name string) {
	t.Helper()
	dir := filepath.Join(catalog, name)
	require.NoError(t, os.MkdirAll(dir, 0o750))

	files := map[string]string{
		"addon.yaml":        "name: " + name + "\ndescription: test addon\nversion: \"15\"\ncategory: databases\n",
		"compose.yaml.tmpl": "services:\n  " + name + ":\n    image: " + name + ":{{ .Version }}\n",
		"env.yaml":          "- name: " + name + "_DB\n  default: app\n",
		"tasks.yaml":        "- name: install {{ addon }}\n",
	}
	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o600))
	}
}
