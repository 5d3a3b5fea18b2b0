// Package vault installs HashiCorp Vault in dev mode so credentials can be
// provisioned into a KV v2 mount without unseal ceremony.
package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/helm"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/installer"
)

const (
	// Namespace is the namespace Vault is installed into.
	Namespace = "vault"

	// ReleaseName is the Helm release name of the Vault server.
	ReleaseName = "vault"

	// DevRootToken is the predictable root token used by the dev-mode server.
	// Dev mode stores data in memory and is unsealed automatically; it must
	// never be used outside a local demo cluster.
	DevRootToken = "root"

	repositoryName   = "hashicorp"
	repositoryURL    = "https://helm.releases.hashicorp.com"
	chartName        = "hashicorp/vault"
	installerTimeout = 5 * time.Minute
)

// Installer installs the Vault Helm chart in dev mode.
type Installer struct {
	helmClient helm.Interface
	timeout    time.Duration
}

var _ installer.Installer = (*Installer)(nil)

// NewInstaller constructs a Vault installer using the provided Helm client.
func NewInstaller(helmClient helm.Interface) *Installer {
	return &Installer{
		helmClient: helmClient,
		timeout:    installerTimeout,
	}
}

// Install registers the HashiCorp repository and installs or upgrades the
// Vault release in dev mode.
func (i *Installer) Install(ctx context.Context) error {
	repoErr := i.helmClient.AddRepository(ctx, &helm.RepositoryEntry{
		Name: repositoryName,
		URL:  repositoryURL,
	})
	if repoErr != nil {
		return fmt.Errorf("failed to add hashicorp helm repository: %w", repoErr)
	}

	spec := &helm.ChartSpec{
		ReleaseName:     ReleaseName,
		ChartName:       chartName,
		Namespace:       Namespace,
		RepoURL:         repositoryURL,
		CreateNamespace: true,
		Wait:            true,
		Timeout:         i.timeout,
		Silent:          true,
		SetValues: map[string]string{
			"server.dev.enabled":      "true",
			"server.dev.devRootToken": DevRootToken,
			"injector.enabled":        "false",
		},
	}

	_, err := i.helmClient.InstallOrUpgradeChart(ctx, spec)
	if err != nil {
		return fmt.Errorf("failed to install vault: %w", err)
	}

	return nil
}

// Uninstall removes the Vault release.
func (i *Installer) Uninstall(ctx context.Context) error {
	err := i.helmClient.UninstallRelease(ctx, ReleaseName, Namespace)
	if err != nil {
		return fmt.Errorf("failed to uninstall vault: %w", err)
	}

	return nil
}
