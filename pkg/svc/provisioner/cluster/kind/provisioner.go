// Package kindprovisioner provisions local Kubernetes clusters with kind.
package kindprovisioner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	runner "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/runner"
	clustererrors "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/provisioner/cluster/errors"
	"gopkg.in/yaml.v3"
	"sigs.k8s.io/kind/pkg/apis/config/v1alpha4"
	kindcmd "sigs.k8s.io/kind/pkg/cmd"
	createcluster "sigs.k8s.io/kind/pkg/cmd/kind/create/cluster"
	deletecluster "sigs.k8s.io/kind/pkg/cmd/kind/delete/cluster"
	getclusters "sigs.k8s.io/kind/pkg/cmd/kind/get/clusters"
	"sigs.k8s.io/kind/pkg/log"
)

// DefaultClusterName is used when neither the caller nor the config names the cluster.
const DefaultClusterName = "portfolio"

// Provisioner provisions kind clusters through kind's Cobra commands
// (create, delete, get clusters) executed via an injected command runner.
type Provisioner struct {
	kubeConfig string
	kindConfig *v1alpha4.Cluster
	runner     runner.CommandRunner
}

// DefaultConfig returns a single control-plane kind cluster configuration.
func DefaultConfig() *v1alpha4.Cluster {
	return &v1alpha4.Cluster{
		TypeMeta: v1alpha4.TypeMeta{
			Kind:       "Cluster",
			APIVersion: "kind.x-k8s.io/v1alpha4",
		},
		Name: DefaultClusterName,
		Nodes: []v1alpha4.Node{
			{Role: v1alpha4.ControlPlaneRole},
		},
	}
}

// NewProvisioner constructs a Provisioner with the default command runner.
func NewProvisioner(kindConfig *v1alpha4.Cluster, kubeConfig string) *Provisioner {
	return NewProvisionerWithRunner(
		kindConfig,
		kubeConfig,
		runner.NewCobraCommandRunner(os.Stdout, os.Stderr),
	)
}

// NewProvisionerWithRunner constructs a Provisioner with an explicit command
// runner for testing purposes.
func NewProvisionerWithRunner(
	kindConfig *v1alpha4.Cluster,
	kubeConfig string,
	cmdRunner runner.CommandRunner,
) *Provisioner {
	return &Provisioner{
		kubeConfig: kubeConfig,
		kindConfig: kindConfig,
		runner:     cmdRunner,
	}
}

// Create creates a kind cluster using kind's Cobra command.
func (p *Provisioner) Create(ctx context.Context, name string) error {
	target := p.targetName(name)

	// Serialize config to temp file (required by kind's Cobra command)
	tmpFile, err := os.CreateTemp("", "kind-config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	defer func() { _ = tmpFile.Close() }()
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	configYAML, err := yaml.Marshal(p.kindConfig)
	if err != nil {
		return fmt.Errorf("marshal kind config: %w", err)
	}

	const configFilePerms = 0o600

	err = os.WriteFile(tmpFile.Name(), configYAML, configFilePerms)
	if err != nil {
		return fmt.Errorf("write temp config file: %w", err)
	}

	logger := &streamLogger{writer: os.Stdout}
	streams := kindcmd.IOStreams{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}

	cmd := createcluster.NewCommand(logger, streams)

	args := []string{"--name", target, "--config", tmpFile.Name()}
	if p.kubeConfig != "" {
		args = append(args, "--kubeconfig", p.kubeConfig)
	}

	_, err = p.runner.Run(ctx, cmd, args)
	if err != nil {
		return fmt.Errorf("failed to create kind cluster: %w", err)
	}

	return nil
}

// Delete deletes a kind cluster using kind's Cobra command.
// Returns clustererrors.ErrClusterNotFound if the cluster does not exist.
func (p *Provisioner) Delete(ctx context.Context, name string) error {
	target := p.targetName(name)

	exists, err := p.Exists(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to check cluster existence: %w", err)
	}

	if !exists {
		return fmt.Errorf("%w: %s", clustererrors.ErrClusterNotFound, target)
	}

	logger := &streamLogger{writer: os.Stdout}
	streams := kindcmd.IOStreams{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}

	cmd := deletecluster.NewCommand(logger, streams)

	args := []string{"--name", target}
	if p.kubeConfig != "" {
		args = append(args, "--kubeconfig", p.kubeConfig)
	}

	_, err = p.runner.Run(ctx, cmd, args)
	if err != nil {
		return fmt.Errorf("failed to delete kind cluster: %w", err)
	}

	return nil
}

// List returns all kind clusters using kind's Cobra command.
func (p *Provisioner) List(ctx context.Context) ([]string, error) {
	// Capture output without displaying it
	var outBuf bytes.Buffer

	logger := &streamLogger{writer: &outBuf}

	// Kind's getclusters command writes to streams.Out directly (via
	// fmt.Fprintln), not through cmd.SetOut(), so outBuf is read primarily.
	streams := kindcmd.IOStreams{
		Out:    &outBuf,
		ErrOut: io.Discard,
	}

	cmd := getclusters.NewCommand(logger, streams)

	result, err := p.runner.Run(ctx, cmd, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to list kind clusters: %w", err)
	}

	const noKindClustersMsg = "No kind clusters found."

	// If outBuf is empty (e.g., in mocked tests), fall back to result.Stdout.
	output := outBuf.Bytes()
	if len(output) == 0 {
		output = []byte(result.Stdout)
	}

	lines := bytes.Split(output, []byte("\n"))

	var clusters []string

	for _, line := range lines {
		name := string(bytes.TrimSpace(line))
		if name != "" && name != noKindClustersMsg {
			clusters = append(clusters, name)
		}
	}

	return clusters, nil
}

// Exists checks if a kind cluster exists.
func (p *Provisioner) Exists(ctx context.Context, name string) (bool, error) {
	clusters, err := p.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list kind clusters: %w", err)
	}

	return slices.Contains(clusters, p.targetName(name)), nil
}

// --- internals ---

func (p *Provisioner) targetName(name string) string {
	if name != "" {
		return name
	}

	if p.kindConfig != nil && p.kindConfig.Name != "" {
		return p.kindConfig.Name
	}

	return DefaultClusterName
}

// streamLogger forwards kind's console output in real time.
// Only info-level messages (V(0)) are enabled to avoid verbose debug output.
type streamLogger struct {
	writer io.Writer
}

func (l *streamLogger) Warn(message string) {
	l.write(message)
}

func (l *streamLogger) Warnf(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) Error(message string) {
	l.write(message)
}

func (l *streamLogger) Errorf(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) Info(message string) {
	l.write(message)
}

func (l *streamLogger) Infof(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) Enabled() bool {
	return true
}

func (l *streamLogger) V(level log.Level) log.InfoLogger {
	// Suppress verbose/debug messages (V(1) and higher)
	if level > 0 {
		return noopInfoLogger{}
	}

	return l
}

func (l *streamLogger) write(message string) {
	if l == nil {
		return
	}

	if message == "" {
		_, _ = io.WriteString(l.writer, "\n")

		return
	}

	if strings.ContainsRune(message, '\r') || strings.HasSuffix(message, "\n") {
		_, _ = io.WriteString(l.writer, message)

		return
	}

	_, _ = io.WriteString(l.writer, message+"\n")
}

// noopInfoLogger discards verbose/debug messages (V(1) and higher).
type noopInfoLogger struct{}

func (noopInfoLogger) Info(string)          {}
func (noopInfoLogger) Infof(string, ...any) {}
func (noopInfoLogger) Enabled() bool        { return false }
