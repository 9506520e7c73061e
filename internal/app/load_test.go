package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedtags/internal/adapters"
	"hedtags/internal/types"
)

const stubBaseXML = `<HED version="8.2.0">
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
			<node><name>Sensory-event</name></node>
		</node>
	</schema>
</HED>`

const stubOldXML = `<HED version="7.3.1">
	<node>
		<name>Event</name>
		<node>
			<name>Duration</name>
			<node takesValue="true"><name>#</name></node>
		</node>
	</node>
</HED>`

const stubLibraryXML = `<HED version="1.1.0" library="testlib">
	<schema>
		<node><name>Sim</name></node>
	</schema>
</HED>`

// stubSchemaSource serves canned documents keyed by spec key and counts
// fetches so caching is observable.
type stubSchemaSource struct {
	docs    map[string]string
	fetches int
}

func (s *stubSchemaSource) Fetch(_ context.Context, spec types.SchemaSpec) (types.SchemaDocument, error) {
	s.fetches++
	data, ok := s.docs[spec.Key()]
	if !ok {
		return types.SchemaDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no document for " + spec.Key())
	}
	return types.SchemaDocument{Data: []byte(data), Source: "stub:" + spec.Key()}, nil
}

func stubService(docs map[string]string) (*Service, *stubSchemaSource) {
	source := &stubSchemaSource{docs: docs}
	return &Service{
		Source:   source,
		Parser:   adapters.SchemaXMLAdapter{},
		Fallback: adapters.FallbackSchemaAdapter{},
		loaded:   map[string]*types.Schema{},
	}, source
}

// ---------------------------------------------------------------------------
// LoadSchemas
// ---------------------------------------------------------------------------

func TestLoadSchemasBaseAndLibrary(t *testing.T) {
	service, _ := stubService(map[string]string{
		"8.2.0":         stubBaseXML,
		"testlib_1.1.0": stubLibraryXML,
	})

	schemas, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"8.2.0", "testlib_1.1.0"}})
	require.NoError(t, err)

	require.NotNil(t, schemas.Base)
	assert.Equal(t, "8.2.0", schemas.Base.Spec.Version)
	assert.True(t, schemas.Base.IsHed3)
	assert.Equal(t, "stub:8.2.0", schemas.Base.Source)

	lib, ok := schemas.ForPrefix("testlib")
	require.True(t, ok)
	assert.Equal(t, "testlib", lib.Spec.Library)
	assert.True(t, lib.IsHed3)
}

func TestLoadSchemasOldGeneration(t *testing.T) {
	service, _ := stubService(map[string]string{"7.3.1": stubOldXML})

	schemas, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"7.3.1"}})
	require.NoError(t, err)
	assert.False(t, schemas.Base.IsHed3)
}

func TestLoadSchemasCachesBySpec(t *testing.T) {
	service, source := stubService(map[string]string{"8.2.0": stubBaseXML})

	first, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"8.2.0"}})
	require.NoError(t, err)
	second, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"8.2.0"}})
	require.NoError(t, err)

	assert.Equal(t, 1, source.fetches)
	assert.Same(t, first.Base, second.Base)
}

func TestLoadSchemasEmptySpecs(t *testing.T) {
	service, _ := stubService(nil)

	_, err := service.LoadSchemas(t.Context(), LoadRequest{})
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}

func TestLoadSchemasRejectsTwoBaseSpecs(t *testing.T) {
	service, _ := stubService(map[string]string{
		"8.2.0": stubBaseXML,
		"7.3.1": stubOldXML,
	})

	_, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"8.2.0", "7.3.1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one base schema")
}

func TestLoadSchemasRejectsRepeatedLibrary(t *testing.T) {
	service, _ := stubService(map[string]string{"testlib_1.1.0": stubLibraryXML})

	_, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"testlib_1.1.0", "testlib_1.1.0"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "library schema given twice")
}

func TestLoadSchemasInvalidSpec(t *testing.T) {
	service, _ := stubService(nil)

	_, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"not-a-version"}})
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// fallback substitution
// ---------------------------------------------------------------------------

func TestLoadSchemasFallback(t *testing.T) {
	service, _ := stubService(nil)

	schemas, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"8.0.0"}})
	require.NoError(t, err)

	base := schemas.Base
	require.NotNil(t, base)
	assert.True(t, base.UsedFallback)
	assert.Equal(t, "bundled:HED"+adapters.BundledSchemaVersion, base.Source)
	// The requested spec is kept even though another document served it
	assert.Equal(t, "8.0.0", base.Spec.Version)
	assert.True(t, base.IsHed3)
}

func TestLoadSchemasNoFallback(t *testing.T) {
	service, _ := stubService(nil)

	_, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"8.0.0"}, NoFallback: true})
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeNotFound, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}

func TestLoadSchemasLibraryNeverSubstituted(t *testing.T) {
	service, _ := stubService(nil)

	// The bundled document is base vocabulary; serving it for a library
	// would validate against the wrong tags
	_, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"testlib_1.1.0"}})
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// acquisition wiring
// ---------------------------------------------------------------------------

func TestLoadSchemasExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.xml")
	require.NoError(t, os.WriteFile(path, []byte(stubBaseXML), 0o644))

	service := NewService()
	schemas, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"8.2.0"}, SchemaPath: path})
	require.NoError(t, err)
	assert.Equal(t, path, schemas.Base.Source)
	assert.False(t, schemas.Base.UsedFallback)
}

func TestLoadSchemasThroughCatalog(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	catalogPath := filepath.Join(root, "fixtures", "catalog.yaml")

	service := NewService()
	schemas, err := service.LoadSchemas(t.Context(), LoadRequest{Specs: []string{"8.2.0"}, CatalogPath: catalogPath})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "fixtures", "schemas", "HED8.2.0.xml"), schemas.Base.Source)
	assert.True(t, schemas.Base.IsHed3)
}
