package e2e

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedtags/tests/testutil"
)

func runHedtags(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "./cmd/hedtags"}, args...)...)
	cmd.Dir = testutil.RepoRoot(t)
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestValidateCommandE2E(t *testing.T) {
	out, err := runHedtags(t,
		"validate",
		"--schema", "8.2.0",
		"--schema-path", "fixtures/schemas/HED8.2.0.xml",
		"Event/Sensory-event",
		"Event/Duration/35 ms",
		"Cost/$25.99",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "validated: 3 tag(s)")
}

func TestValidateCommandE2EReportsIssues(t *testing.T) {
	out, err := runHedtags(t,
		"validate",
		"--schema", "8.2.0",
		"--schema-path", "fixtures/schemas/HED8.2.0.xml",
		"Not/A/Real/Tag",
	)
	require.Error(t, err)
	assert.Contains(t, out, "invalid_tag")
}

func TestConvertCommandE2E(t *testing.T) {
	out, err := runHedtags(t,
		"convert", "--to", "long",
		"--schema", "8.2.0",
		"--schema-path", "fixtures/schemas/HED8.2.0.xml",
		"Duration/35",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Event/Duration/35")
}

func TestInspectCommandE2E(t *testing.T) {
	out, err := runHedtags(t,
		"inspect", "--format", "yaml",
		"--schema", "8.2.0",
		"--catalog", "fixtures/catalog.yaml",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "version: 8.2.0")
	assert.Contains(t, out, "generation: 3")
	assert.False(t, strings.Contains(out, "used_fallback: true"))
}
