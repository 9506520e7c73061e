package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedtags/internal/types"
)

func TestSchemaFileFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.xml")
	require.NoError(t, os.WriteFile(path, []byte(resolverSchemaXML), 0o644))

	doc, err := SchemaFileAdapter{}.Fetch(context.Background(), types.SchemaSpec{LocalPath: path})
	require.NoError(t, err)
	assert.Equal(t, []byte(resolverSchemaXML), doc.Data)
	assert.Equal(t, path, doc.Source)
}

func TestSchemaFileFetchMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xml")

	_, err := SchemaFileAdapter{}.Fetch(context.Background(), types.SchemaSpec{LocalPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema document")
}

func TestSchemaFileFetchEmptyPath(t *testing.T) {
	_, err := SchemaFileAdapter{}.Fetch(context.Background(), types.SchemaSpec{LocalPath: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema path is empty")
}
