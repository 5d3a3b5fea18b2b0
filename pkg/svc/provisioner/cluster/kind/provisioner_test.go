package kindprovisioner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	runner "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/runner"
	clustererrors "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/provisioner/cluster/errors"
	kindprovisioner "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/provisioner/cluster/kind"
)

// fakeRunner records invocations and returns canned results per command name.
type fakeRunner struct {
	calls   []call
	results map[string]runner.CommandResult
	errs    map[string]error
}

type call struct {
	name string
	args []string
}

func (f *fakeRunner) Run(
	_ context.Context,
	cmd *cobra.Command,
	args []string,
) (runner.CommandResult, error) {
	f.calls = append(f.calls, call{name: cmd.Name(), args: args})

	if err := f.errs[cmd.Name()]; err != nil {
		return runner.CommandResult{}, err
	}

	return f.results[cmd.Name()], nil
}

func newProvisioner(fake *fakeRunner) *kindprovisioner.Provisioner {
	return kindprovisioner.NewProvisionerWithRunner(
		kindprovisioner.DefaultConfig(),
		"/tmp/kubeconfig",
		fake,
	)
}

func TestCreatePassesNameConfigAndKubeconfig(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{}
	provisioner := newProvisioner(fake)

	err := provisioner.Create(context.Background(), "demo")

	require.NoError(t, err)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "cluster", fake.calls[0].name)
	assert.Contains(t, fake.calls[0].args, "--name")
	assert.Contains(t, fake.calls[0].args, "demo")
	assert.Contains(t, fake.calls[0].args, "--config")
	assert.Contains(t, fake.calls[0].args, "--kubeconfig")
}

func TestCreateDefaultsClusterNameFromConfig(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{}
	provisioner := newProvisioner(fake)

	err := provisioner.Create(context.Background(), "")

	require.NoError(t, err)
	assert.Contains(t, fake.calls[0].args, kindprovisioner.DefaultClusterName)
}

func TestCreateWrapsRunnerError(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{errs: map[string]error{"cluster": errors.New("docker unavailable")}}
	provisioner := newProvisioner(fake)

	err := provisioner.Create(context.Background(), "demo")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create kind cluster")
}

func TestListParsesClusterNames(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{results: map[string]runner.CommandResult{
		"clusters": {Stdout: "portfolio\ndemo\n"},
	}}
	provisioner := newProvisioner(fake)

	clusters, err := provisioner.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"portfolio", "demo"}, clusters)
}

func TestListFiltersPlaceholderOutput(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{results: map[string]runner.CommandResult{
		"clusters": {Stdout: "No kind clusters found.\n"},
	}}
	provisioner := newProvisioner(fake)

	clusters, err := provisioner.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, clusters)
}

func TestExistsMatchesListedCluster(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{results: map[string]runner.CommandResult{
		"clusters": {Stdout: "portfolio\n"},
	}}
	provisioner := newProvisioner(fake)

	exists, err := provisioner.Exists(context.Background(), "portfolio")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteMissingClusterReturnsNotFound(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{results: map[string]runner.CommandResult{
		"clusters": {Stdout: ""},
	}}
	provisioner := newProvisioner(fake)

	err := provisioner.Delete(context.Background(), "ghost")

	require.ErrorIs(t, err, clustererrors.ErrClusterNotFound)
}

func TestDeleteExistingClusterInvokesDeleteCommand(t *testing.T) {
	t.Parallel()

	fake := &fakeRunner{results: map[string]runner.CommandResult{
		"clusters": {Stdout: "demo\n"},
	}}
	provisioner := newProvisioner(fake)

	err := provisioner.Delete(context.Background(), "demo")

	require.NoError(t, err)
	require.Len(t, fake.calls, 2)
	assert.Equal(t, "cluster", fake.calls[1].name)
	assert.Contains(t, fake.calls[1].args, "demo")
}
