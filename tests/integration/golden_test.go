package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"hedtags/internal/app"
	"hedtags/tests/testutil"
)

// TestGoldenValidate validates a fixed tag list against the fixture
// schema and compares the rendered report against committed golden
// files. If the golden files do not exist yet (first run), they are
// written so they can be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenValidate(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")

	service := app.NewService()
	result, err := service.ValidateTags(t.Context(), app.ValidateRequest{
		Schemas: app.LoadRequest{
			Specs:      []string{"8.2.0"},
			SchemaPath: testutil.FixtureSchemaPath(t, "HED8.2.0.xml"),
		},
		Tags: []string{
			"Event/Sensory-event",
			"Event/Duration/35 ms",
			"Attribute/Direction/Left/1.5 degrees",
			"Cost/$25.99",
			"Attribute/Something-new",
			"Event/Duration/35 furlongs",
			"Item/Not-an-object",
		},
	})
	require.NoError(t, err)

	var report strings.Builder
	fmt.Fprintf(&report, "checked: %d\nvalid: %t\n", result.Checked, result.Valid)
	for _, issue := range result.Issues {
		fmt.Fprintf(&report, "%s %s [%s]: %s\n", issue.Severity, issue.Tag, issue.Code, issue.Message)
	}
	compareGolden(t, goldenDir, "validate.report", report.String())
}

// TestGoldenInspect pins the inspect summary of the fixture schema.
func TestGoldenInspect(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")

	service := app.NewService()
	result, err := service.InspectSchema(t.Context(), app.InspectRequest{
		Schemas: app.LoadRequest{
			Specs:      []string{"8.2.0"},
			SchemaPath: testutil.FixtureSchemaPath(t, "HED8.2.0.xml"),
		},
	})
	require.NoError(t, err)

	rendered, err := yaml.Marshal(result)
	require.NoError(t, err)
	compareGolden(t, goldenDir, "inspect.yaml", string(rendered))
}

func compareGolden(t *testing.T, dir string, name string, got string) {
	t.Helper()
	path := filepath.Join(dir, name)
	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(path, []byte(got), 0o644))
		t.Logf("golden file %s written, commit it", name)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, string(want), got, "golden mismatch for %s", name)
}
