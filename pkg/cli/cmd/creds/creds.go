// Package creds wires the credential provisioning commands: storing the GitHub
// App bundle in Vault, propagating the Vault token into the cluster, and
// reporting which source currently yields credentials.
package creds

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

const (
	appIDFlagName          = "app-id"
	installationIDFlagName = "installation-id"
	privateKeyFileFlagName = "private-key-file"
	vaultAddrFlagName      = "vault-addr"
	vaultTokenFlagName     = "vault-token"
	namespaceFlagName      = "namespace"
	kubeconfigFlagName     = "kubeconfig"
)

// NewCredsCmd creates the parent creds command and wires subcommands beneath it.
func NewCredsCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "creds",
		Short: "Manage GitHub App credentials",
		Long: "Provision GitHub App credentials into Vault, propagate the Vault token " +
			"into the cluster, and inspect which source currently yields credentials.",
		Args:         cobra.NoArgs,
		RunE:         handleCredsRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewProvisionCmd(runtimeContainer))
	cmd.AddCommand(NewPropagateCmd(runtimeContainer))
	cmd.AddCommand(NewStatusCmd())

	return cmd
}

// --- internals ---

func handleCredsRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying creds command help: %w", err)
	}

	return nil
}

// addVaultFlags registers the Vault connection flags, with VAULT_ADDR and
// VAULT_TOKEN as environment fallbacks.
func addVaultFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().String(vaultAddrFlagName, "", "Vault server address (defaults to $VAULT_ADDR)")
	cmd.Flags().String(vaultTokenFlagName, "", "Vault token (defaults to $VAULT_TOKEN)")

	_ = v.BindPFlag(vaultAddrFlagName, cmd.Flags().Lookup(vaultAddrFlagName))
	_ = v.BindPFlag(vaultTokenFlagName, cmd.Flags().Lookup(vaultTokenFlagName))
	_ = v.BindEnv(vaultAddrFlagName, "VAULT_ADDR")
	_ = v.BindEnv(vaultTokenFlagName, "VAULT_TOKEN")
}
