package cluster

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

// NewListCmd wires the cluster list command using the shared runtime container.
func NewListCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List local clusters",
		Long:         "List the local Kubernetes clusters known to the provisioner.",
		SilenceUsage: true,
	}

	cmd.Flags().String(kubeconfigFlagName, "", "Path to the kubeconfig file to read")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handleListRunE(cmd, injector)
		})
	}

	return cmd
}

// --- internals ---

func handleListRunE(cmd *cobra.Command, injector di.Injector) error {
	kubeConfig, _ := cmd.Flags().GetString(kubeconfigFlagName)

	factory, err := di.ResolveClusterProvisionerFactory(injector)
	if err != nil {
		return err
	}

	provisioner, err := factory.Provisioner(kubeConfig)
	if err != nil {
		return fmt.Errorf("failed to create cluster provisioner: %w", err)
	}

	clusters, err := provisioner.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(clusters) == 0 {
		_, _ = fmt.Fprintln(out, "No clusters found.")

		return nil
	}

	for _, cluster := range clusters {
		_, _ = fmt.Fprintln(out, cluster)
	}

	return nil
}
