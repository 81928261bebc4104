package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddons_ListsCatalog(t *testing.T) {
	paths := testPaths(t, validProjectYAML)
	writeCatalogAddon(t, paths.Catalog, "postgres")
	writeCatalogAddon(t, paths.Catalog, "redis")

	assert.NoError(t, Addons(paths))
}

func TestAddons_MissingCatalog(t *testing.T) {
	paths := testPaths(t, validProjectYAML)
	assert.Error(t, Addons(paths))
}
