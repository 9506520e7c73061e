package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedtags/internal/app"
	"hedtags/tests/testutil"
)

// TestCatalogWorkflow exercises the full workflow a new deployment would
// follow:
//
//	write a schema document -> pin it in a catalog -> load through the
//	catalog -> validate and convert tags against it
func TestCatalogWorkflow(t *testing.T) {
	dir := t.TempDir()

	// Step 1: a local schema document.
	schemaXML := `<HED version="8.2.0">
	<schema>
		<node>
			<name>Event</name>
			<node>
				<name>Duration</name>
				<node>
					<name>#</name>
					<attribute><name>takesValue</name></attribute>
					<attribute><name>isNumeric</name></attribute>
				</node>
			</node>
		</node>
	</schema>
</HED>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.xml"), []byte(schemaXML), 0o644))

	// Step 2: a catalog pinning the version to that document.
	catalogYAML := `catalog_version: "1"
schemas:
  - version: "8.2.0"
    path: schema.xml
`
	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalogYAML), 0o644))

	// Step 3: load through the catalog and validate.
	service := app.NewService()
	schemas := app.LoadRequest{Specs: []string{"8.2.0"}, CatalogPath: catalogPath, NoFallback: true}

	result, err := service.ValidateTags(t.Context(), app.ValidateRequest{
		Schemas: schemas,
		Tags:    []string{"Event/Duration/35"},
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Issues)

	// Step 4: convert against the same loaded schema set.
	converted, err := service.ConvertTags(t.Context(), app.ConvertRequest{
		Schemas:   schemas,
		Tags:      []string{"Duration/35"},
		Direction: "long",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Event/Duration/35"}, converted.Tags)
	assert.Empty(t, converted.Issues)
}

// TestCatalogWorkflowBrokenEntry confirms the error taxonomy at the
// acquisition boundary: a catalog entry pointing at a missing document
// surfaces as a failure naming the source when fallback is disabled,
// and is masked by the bundled document otherwise.
func TestCatalogWorkflowBrokenEntry(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	catalogYAML := `catalog_version: "1"
schemas:
  - version: "8.2.0"
    path: gone.xml
`
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalogYAML), 0o644))

	service := app.NewService()
	_, err := service.LoadSchemas(t.Context(), app.LoadRequest{
		Specs:       []string{"8.2.0"},
		CatalogPath: catalogPath,
		NoFallback:  true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.xml", "failure names the attempted source")

	schemas, err := app.NewService().LoadSchemas(t.Context(), app.LoadRequest{
		Specs:       []string{"8.2.0"},
		CatalogPath: catalogPath,
	})
	require.NoError(t, err)
	require.NotNil(t, schemas.Base)
	assert.True(t, schemas.Base.UsedFallback)
	assert.Contains(t, schemas.Base.Source, "bundled:")

	report, err := app.NewService().ValidateTags(t.Context(), app.ValidateRequest{
		Schemas: app.LoadRequest{
			Specs:      []string{"8.2.0"},
			SchemaPath: testutil.FixtureSchemaPath(t, "HED8.2.0.xml"),
		},
		Tags: []string{"Event/Sensory-event"},
	})
	require.NoError(t, err)
	assert.True(t, report.Valid)
}
