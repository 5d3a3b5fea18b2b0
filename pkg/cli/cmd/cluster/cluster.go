// Package cluster wires the cluster lifecycle commands.
package cluster

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

const (
	kubeconfigFlagName = "kubeconfig"
	nameFlagName       = "name"
)

// NewClusterCmd creates the parent cluster command and wires lifecycle subcommands beneath it.
func NewClusterCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cluster",
		Short:        "Manage the local demo cluster",
		Long:         "Manage lifecycle operations for the local Kubernetes demo cluster.",
		Args:         cobra.NoArgs,
		RunE:         handleClusterRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCreateCmd(runtimeContainer))
	cmd.AddCommand(NewDeleteCmd(runtimeContainer))
	cmd.AddCommand(NewListCmd(runtimeContainer))

	return cmd
}

// --- internals ---

func handleClusterRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying cluster command help: %w", err)
	}

	return nil
}

func addClusterFlags(cmd *cobra.Command) {
	cmd.Flags().String(nameFlagName, "", "Name of the cluster (defaults to 'portfolio')")
	cmd.Flags().String(kubeconfigFlagName, "", "Path to the kubeconfig file to write or read")
}
