package cluster

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/ui/notify"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

// NewDeleteCmd wires the cluster delete command using the shared runtime container.
func NewDeleteCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "delete",
		Short:        "Delete the demo cluster",
		Long:         "Delete the local Kubernetes demo cluster and its resources.",
		SilenceUsage: true,
	}

	addClusterFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handleDeleteRunE(cmd, injector)
		})
	}

	return cmd
}

// --- internals ---

func handleDeleteRunE(cmd *cobra.Command, injector di.Injector) error {
	name, _ := cmd.Flags().GetString(nameFlagName)
	kubeConfig, _ := cmd.Flags().GetString(kubeconfigFlagName)

	factory, err := di.ResolveClusterProvisionerFactory(injector)
	if err != nil {
		return err
	}

	provisioner, err := factory.Provisioner(kubeConfig)
	if err != nil {
		return fmt.Errorf("failed to create cluster provisioner: %w", err)
	}

	out := cmd.OutOrStdout()
	notify.Titlef(out, "🔥", "Delete cluster...")
	notify.Activityf(out, "deleting cluster '%s'", displayName(name))

	err = provisioner.Delete(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to delete cluster: %w", err)
	}

	notify.Successf(out, "cluster deleted")

	return nil
}
