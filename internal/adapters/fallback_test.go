package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedtags/internal/types"
)

func TestFallbackServesBundledSchema(t *testing.T) {
	doc, err := FallbackSchemaAdapter{}.Fetch(t.Context(), types.SchemaSpec{Version: "9.9.9"})
	require.NoError(t, err)

	assert.Equal(t, "bundled:HED"+BundledSchemaVersion, doc.Source)
	require.NotEmpty(t, doc.Data)

	// The embedded document must itself be a loadable schema
	parsed, err := SchemaXMLAdapter{}.Parse(doc.Data)
	require.NoError(t, err)
	assert.Equal(t, BundledSchemaVersion, parsed.Version)
	assert.Empty(t, parsed.Library)
	assert.NotEmpty(t, parsed.Root.ChildNodes(types.ElementSchemaWrapper))
}
