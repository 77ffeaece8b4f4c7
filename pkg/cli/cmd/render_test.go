package cmd_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Stdout(t *testing.T) {
	t.Parallel()

	rt := testRuntime(testDeps{secrets: allSecrets()})

	out, err := run(t, rt, "render", "--config", writeConfig(t, v1alpha1.DNSSolverCloudFlare))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\n# ManifestURL/cert-manager-crds\n"), out)
	assert.Contains(t, out, "kind: HelmRelease")
	assert.Contains(t, out, "api-key.txt: REDACTED")
	assert.Equal(t, 2, strings.Count(out, "kind: ClusterIssuer"))
	assert.NotContains(t, out, "config loaded")
}

func TestRender_OutputFile(t *testing.T) {
	t.Parallel()

	rt := testRuntime(testDeps{secrets: mapStore{v1alpha1.SecretLetsEncryptEmail: "c@d.com"}})
	output := filepath.Join(t.TempDir(), "stack.yaml")
	config := writeConfig(t, v1alpha1.DNSSolverNone)

	out, err := run(t, rt, "render", "--config", config, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "rendered 5 resources to "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "kind: Secret")

	_, err = run(t, rt, "render", "--config", config, "-o", output)
	require.ErrorIs(t, err, fsutil.ErrFileExists)

	_, err = run(t, rt, "render", "--config", config, "-o", output, "--force")
	require.NoError(t, err)
}

func TestRender_ShowSecrets(t *testing.T) {
	t.Parallel()

	rt := testRuntime(testDeps{secrets: allSecrets()})

	out, err := run(t, rt, "render", "--config", writeConfig(t, v1alpha1.DNSSolverCloudFlare), "--show-secrets")

	require.NoError(t, err)
	assert.Contains(t, out, "api-key.txt: super-secret-key")
}
