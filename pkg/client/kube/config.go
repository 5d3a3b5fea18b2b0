// Package kubeclient provides Kubernetes access for the credential subsystem:
// REST config loading from kubeconfig and secret upserts.
package kubeclient

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// DefaultKubeconfigPath returns the default kubeconfig path for the current user.
func DefaultKubeconfigPath() string {
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}

	homeDir, _ := os.UserHomeDir()

	return filepath.Join(homeDir, ".kube", "config")
}

// NewRESTConfig loads a REST config from the given kubeconfig path and
// context. An empty path falls back to the default kubeconfig location; an
// empty context uses the file's current context.
func NewRESTConfig(kubeconfigPath, kubeContext string) (*rest.Config, error) {
	if kubeconfigPath == "" {
		kubeconfigPath = DefaultKubeconfigPath()
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}

	restConfig, err := clientcmd.
		NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).
		ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig %q: %w", kubeconfigPath, err)
	}

	return restConfig, nil
}
