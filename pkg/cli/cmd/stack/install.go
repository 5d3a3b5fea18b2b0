package stack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/ui/notify"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/helm"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/installer/flux"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/installer/vault"
)

// NewInstallCmd wires the stack install command using the shared runtime container.
func NewInstallCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "install",
		Short:        "Install the Flux operator and Vault",
		Long:         "Install the Flux operator and a dev-mode Vault server into the demo cluster.",
		SilenceUsage: true,
	}

	addStackFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handleInstallRunE(cmd, injector)
		})
	}

	return cmd
}

// --- internals ---

func handleInstallRunE(cmd *cobra.Command, injector di.Injector) error {
	helmClient, err := newHelmClient(cmd, injector)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	notify.Titlef(out, "📦", "Install stack...")

	notify.Activityf(out, "installing flux operator")

	err = flux.NewInstaller(helmClient).Install(cmd.Context())
	if err != nil {
		return err
	}

	notify.Successf(out, "flux operator installed")

	notify.Activityf(out, "installing vault (dev mode)")

	err = vault.NewInstaller(helmClient).Install(cmd.Context())
	if err != nil {
		return err
	}

	notify.Successf(out, "vault installed")

	return nil
}

func newHelmClient(cmd *cobra.Command, injector di.Injector) (helm.Interface, error) {
	kubeConfig, _ := cmd.Flags().GetString(kubeconfigFlagName)
	kubeContext, _ := cmd.Flags().GetString(contextFlagName)

	factory, err := di.ResolveHelmClientFactory(injector)
	if err != nil {
		return nil, err
	}

	helmClient, err := factory(kubeConfig, kubeContext)
	if err != nil {
		return nil, fmt.Errorf("failed to create helm client: %w", err)
	}

	return helmClient, nil
}
