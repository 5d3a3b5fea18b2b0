package stack

import (
	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/ui/notify"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/installer/flux"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/installer/vault"
)

// NewUninstallCmd wires the stack uninstall command using the shared runtime container.
func NewUninstallCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "uninstall",
		Short:        "Remove the Flux operator and Vault",
		Long:         "Remove the Flux operator and Vault releases from the demo cluster.",
		SilenceUsage: true,
	}

	addStackFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handleUninstallRunE(cmd, injector)
		})
	}

	return cmd
}

// --- internals ---

func handleUninstallRunE(cmd *cobra.Command, injector di.Injector) error {
	helmClient, err := newHelmClient(cmd, injector)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	notify.Titlef(out, "🧹", "Uninstall stack...")

	err = vault.NewInstaller(helmClient).Uninstall(cmd.Context())
	if err != nil {
		return err
	}

	notify.Successf(out, "vault removed")

	err = flux.NewInstaller(helmClient).Uninstall(cmd.Context())
	if err != nil {
		return err
	}

	notify.Successf(out, "flux operator removed")

	return nil
}
