package cluster_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/cmd/cluster"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
	clusterprovisioner "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/provisioner/cluster"
)

type fakeProvisioner struct {
	created   []string
	deleted   []string
	clusters  []string
	createErr error
}

func (f *fakeProvisioner) Create(_ context.Context, name string) error {
	if f.createErr != nil {
		return f.createErr
	}

	f.created = append(f.created, name)

	return nil
}

func (f *fakeProvisioner) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)

	return nil
}

func (f *fakeProvisioner) List(context.Context) ([]string, error) {
	return f.clusters, nil
}

func (f *fakeProvisioner) Exists(_ context.Context, name string) (bool, error) {
	for _, cluster := range f.clusters {
		if cluster == name {
			return true, nil
		}
	}

	return false, nil
}

type fakeFactory struct {
	provisioner *fakeProvisioner
}

func (f *fakeFactory) Provisioner(string) (clusterprovisioner.ClusterProvisioner, error) {
	return f.provisioner, nil
}

func newTestRuntime(provisioner *fakeProvisioner) *di.Runtime {
	return di.New(
		di.DefaultModule,
		di.ProvideClusterProvisionerFactory(&fakeFactory{provisioner: provisioner}),
	)
}

func TestCreateProvisionsNamedCluster(t *testing.T) {
	t.Parallel()

	provisioner := &fakeProvisioner{}
	cmd := cluster.NewCreateCmd(newTestRuntime(provisioner))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--name", "demo"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, provisioner.created)
	assert.Contains(t, out.String(), "cluster created")
}

func TestCreateWrapsProvisionerError(t *testing.T) {
	t.Parallel()

	provisioner := &fakeProvisioner{createErr: errors.New("docker not running")}
	cmd := cluster.NewCreateCmd(newTestRuntime(provisioner))

	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create cluster")
}

func TestDeleteRemovesNamedCluster(t *testing.T) {
	t.Parallel()

	provisioner := &fakeProvisioner{clusters: []string{"demo"}}
	cmd := cluster.NewDeleteCmd(newTestRuntime(provisioner))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--name", "demo"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, provisioner.deleted)
}
