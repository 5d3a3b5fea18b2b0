package cluster

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/ui/notify"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

// NewCreateCmd wires the cluster create command using the shared runtime container.
func NewCreateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Create the demo cluster",
		Long:         "Create the local Kubernetes demo cluster.",
		SilenceUsage: true,
	}

	addClusterFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handleCreateRunE(cmd, injector)
		})
	}

	return cmd
}

// --- internals ---

func handleCreateRunE(cmd *cobra.Command, injector di.Injector) error {
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
	notify.Titlef(out, "🚀", "Create cluster...")
	notify.Activityf(out, "creating cluster '%s'", displayName(name))

	err = provisioner.Create(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to create cluster: %w", err)
	}

	notify.Successf(out, "cluster created")

	return nil
}

func displayName(name string) string {
	if name == "" {
		return "portfolio"
	}

	return name
}
