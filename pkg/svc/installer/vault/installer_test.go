package vault_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/helm"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/installer/vault"
)

type mockHelmClient struct {
	mock.Mock
}

func (m *mockHelmClient) InstallOrUpgradeChart(
	ctx context.Context,
	spec *helm.ChartSpec,
) (*helm.ReleaseInfo, error) {
	args := m.Called(ctx, spec)

	info, _ := args.Get(0).(*helm.ReleaseInfo)

	return info, args.Error(1)
}

func (m *mockHelmClient) UninstallRelease(ctx context.Context, releaseName, namespace string) error {
	args := m.Called(ctx, releaseName, namespace)

	return args.Error(0)
}

func (m *mockHelmClient) AddRepository(ctx context.Context, entry *helm.RepositoryEntry) error {
	args := m.Called(ctx, entry)

	return args.Error(0)
}

func TestInstallAddsRepositoryAndEnablesDevMode(t *testing.T) {
	t.Parallel()

	helmClient := &mockHelmClient{}
	helmClient.On("AddRepository", mock.Anything, mock.MatchedBy(func(entry *helm.RepositoryEntry) bool {
		return entry.Name == "hashicorp"
	})).Return(nil)
	helmClient.On("InstallOrUpgradeChart", mock.Anything, mock.MatchedBy(func(spec *helm.ChartSpec) bool {
		return spec.ReleaseName == vault.ReleaseName &&
			spec.Namespace == vault.Namespace &&
			spec.SetValues["server.dev.enabled"] == "true" &&
			spec.SetValues["server.dev.devRootToken"] == vault.DevRootToken
	})).Return(&helm.ReleaseInfo{Name: vault.ReleaseName}, nil)

	err := vault.NewInstaller(helmClient).Install(context.Background())

	require.NoError(t, err)
	helmClient.AssertExpectations(t)
}

func TestInstallStopsWhenRepositoryCannotBeAdded(t *testing.T) {
	t.Parallel()

	helmClient := &mockHelmClient{}
	helmClient.On("AddRepository", mock.Anything, mock.Anything).
		Return(errors.New("index download failed"))

	err := vault.NewInstaller(helmClient).Install(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add hashicorp helm repository")
	helmClient.AssertNotCalled(t, "InstallOrUpgradeChart", mock.Anything, mock.Anything)
}

func TestUninstallRemovesRelease(t *testing.T) {
	t.Parallel()

	helmClient := &mockHelmClient{}
	helmClient.On("UninstallRelease", mock.Anything, vault.ReleaseName, vault.Namespace).Return(nil)

	err := vault.NewInstaller(helmClient).Uninstall(context.Background())

	require.NoError(t, err)
	helmClient.AssertExpectations(t)
}
