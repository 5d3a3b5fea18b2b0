package creds

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/ui/notify"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/creds"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

// NewPropagateCmd wires the creds propagate command using the shared runtime container.
func NewPropagateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cfg := viper.New()

	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Propagate the Vault token into the cluster",
		Long: "Write the Vault token into a Kubernetes secret so in-cluster workloads " +
			"can read credentials from Vault.",
		SilenceUsage: true,
	}

	cmd.Flags().String(namespaceFlagName, "default", "Namespace to write the token secret into")
	cmd.Flags().String(kubeconfigFlagName, "", "Path to the kubeconfig file")
	addVaultFlags(cmd, cfg)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handlePropagateRunE(cmd, cfg, injector)
		})
	}

	return cmd
}

// --- internals ---

func handlePropagateRunE(cmd *cobra.Command, cfg *viper.Viper, injector di.Injector) error {
	namespace, _ := cmd.Flags().GetString(namespaceFlagName)
	kubeConfig, _ := cmd.Flags().GetString(kubeconfigFlagName)
	token := cfg.GetString(vaultTokenFlagName)

	factory, err := di.ResolveSecretApplierFactory(injector)
	if err != nil {
		return err
	}

	applier, err := factory(kubeConfig)
	if err != nil {
		return fmt.Errorf("failed to create secret applier: %w", err)
	}

	out := cmd.OutOrStdout()
	notify.Titlef(out, "🔑", "Propagate vault token...")

	result, err := creds.Propagate(cmd.Context(), applier, namespace, token)
	if err != nil {
		return err
	}

	notify.Successf(out, "vault token written to secret '%s/%s'", result.Namespace, result.SecretName)

	return nil
}
