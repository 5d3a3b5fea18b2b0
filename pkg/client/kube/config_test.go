package kubeclient_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kubeclient "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/kube"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test
contexts:
- context:
    cluster: test
    user: test
  name: test
current-context: test
users:
- name: test
  user:
    token: test-token
`

func TestDefaultKubeconfigPathHonorsEnvOverride(t *testing.T) {
	t.Setenv("KUBECONFIG", "/tmp/custom-kubeconfig")

	assert.Equal(t, "/tmp/custom-kubeconfig", kubeclient.DefaultKubeconfigPath())
}

func TestNewRESTConfigLoadsExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, os.WriteFile(path, []byte(testKubeconfig), 0o600))

	restConfig, err := kubeclient.NewRESTConfig(path, "")

	require.NoError(t, err)
	assert.Equal(t, "https://127.0.0.1:6443", restConfig.Host)
}

func TestNewRESTConfigFailsOnMissingFile(t *testing.T) {
	t.Parallel()

	_, err := kubeclient.NewRESTConfig(filepath.Join(t.TempDir(), "missing"), "")

	require.Error(t, err)
}
