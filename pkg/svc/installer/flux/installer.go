// Package flux installs the Flux operator so the cluster can reconcile
// workloads from a Git or OCI source.
package flux

import (
	"context"
	"fmt"
	"time"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/helm"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/installer"
)

const (
	// Namespace is the namespace the Flux operator is installed into.
	Namespace = "flux-system"

	// ReleaseName is the Helm release name of the Flux operator.
	ReleaseName = "flux-operator"

	chartName        = "oci://ghcr.io/controlplaneio-fluxcd/charts/flux-operator"
	installerTimeout = 5 * time.Minute
)

// Installer installs the Flux operator via its OCI Helm chart.
type Installer struct {
	helmClient helm.Interface
	timeout    time.Duration
}

var _ installer.Installer = (*Installer)(nil)

// NewInstaller constructs a Flux operator installer using the provided Helm client.
func NewInstaller(helmClient helm.Interface) *Installer {
	return &Installer{
		helmClient: helmClient,
		timeout:    installerTimeout,
	}
}

// Install installs or upgrades the Flux operator release.
func (i *Installer) Install(ctx context.Context) error {
	spec := &helm.ChartSpec{
		ReleaseName:     ReleaseName,
		ChartName:       chartName,
		Namespace:       Namespace,
		CreateNamespace: true,
		Wait:            true,
		Timeout:         i.timeout,
		Silent:          true,
		UpgradeCRDs:     true,
	}

	_, err := i.helmClient.InstallOrUpgradeChart(ctx, spec)
	if err != nil {
		return fmt.Errorf("failed to install flux operator: %w", err)
	}

	return nil
}

// Uninstall removes the Flux operator release.
func (i *Installer) Uninstall(ctx context.Context) error {
	err := i.helmClient.UninstallRelease(ctx, ReleaseName, Namespace)
	if err != nil {
		return fmt.Errorf("failed to uninstall flux operator: %w", err)
	}

	return nil
}
