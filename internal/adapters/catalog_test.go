package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedtags/internal/types"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalogLookup(t *testing.T) {
	path := writeCatalog(t, `
catalog_version: "1"
schemas:
  - version: "8.2.0"
    path: schemas/HED8.2.0.xml
  - version: "1.1.0"
    library: testlib
    url: https://schemas.example.com/testlib/HED_testlib_1.1.0.xml
`)
	catalog := NewCatalogAdapter(path)

	entry, ok, err := catalog.Lookup(types.SchemaSpec{Version: "8.2.0"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "schemas", "HED8.2.0.xml"), entry.Path)

	entry, ok, err = catalog.Lookup(types.SchemaSpec{Version: "1.1.0", Library: "testlib"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, entry.Path)
	assert.Equal(t, "https://schemas.example.com/testlib/HED_testlib_1.1.0.xml", entry.URL)
}

func TestCatalogLookupMiss(t *testing.T) {
	path := writeCatalog(t, `
catalog_version: "1"
schemas:
  - version: "8.2.0"
    path: schemas/HED8.2.0.xml
`)
	catalog := NewCatalogAdapter(path)

	_, ok, err := catalog.Lookup(types.SchemaSpec{Version: "7.3.1"})
	require.NoError(t, err)
	assert.False(t, ok)

	// A library spec never matches a base entry of the same version
	_, ok, err = catalog.Lookup(types.SchemaSpec{Version: "8.2.0", Library: "testlib"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogAbsolutePathKept(t *testing.T) {
	path := writeCatalog(t, `
catalog_version: "1"
schemas:
  - version: "8.2.0"
    path: /opt/schemas/HED8.2.0.xml
`)
	catalog := NewCatalogAdapter(path)

	entry, ok, err := catalog.Lookup(types.SchemaSpec{Version: "8.2.0"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/opt/schemas/HED8.2.0.xml", entry.Path)
}

func TestCatalogMissingFile(t *testing.T) {
	catalog := NewCatalogAdapter(filepath.Join(t.TempDir(), "missing.yaml"))

	_, _, err := catalog.Lookup(types.SchemaSpec{Version: "8.2.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog file not found")
}

func TestCatalogMalformedYAML(t *testing.T) {
	path := writeCatalog(t, "schemas: [not: closed")
	catalog := NewCatalogAdapter(path)

	_, _, err := catalog.Lookup(types.SchemaSpec{Version: "8.2.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog yaml")
}

func TestCatalogEmptyPathDisabled(t *testing.T) {
	catalog := NewCatalogAdapter("")

	_, ok, err := catalog.Lookup(types.SchemaSpec{Version: "8.2.0"})
	require.NoError(t, err)
	assert.False(t, ok)
}
