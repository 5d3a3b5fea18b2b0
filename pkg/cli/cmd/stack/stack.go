// Package stack wires the commands that install the GitOps and secrets
// management stack into the demo cluster.
package stack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

const (
	kubeconfigFlagName = "kubeconfig"
	contextFlagName    = "context"
)

// NewStackCmd creates the parent stack command and wires install subcommands beneath it.
func NewStackCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "stack",
		Short:        "Manage the GitOps and secrets stack",
		Long:         "Install and remove the Flux operator and Vault in the demo cluster.",
		Args:         cobra.NoArgs,
		RunE:         handleStackRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewInstallCmd(runtimeContainer))
	cmd.AddCommand(NewUninstallCmd(runtimeContainer))

	return cmd
}

// --- internals ---

func handleStackRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying stack command help: %w", err)
	}

	return nil
}

func addStackFlags(cmd *cobra.Command) {
	cmd.Flags().String(kubeconfigFlagName, "", "Path to the kubeconfig file")
	cmd.Flags().String(contextFlagName, "", "Kubeconfig context to use")
}
