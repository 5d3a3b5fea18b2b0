package creds

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/ui/notify"
	vaultclient "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/vault"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/creds"
)

// NewStatusCmd wires the creds status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which source yields credentials",
		Long: "Resolve the GitHub App credential bundle from the environment and Vault " +
			"and report which source, if any, yields a complete bundle.",
		SilenceUsage: true,
		RunE:         handleStatusRunE,
	}

	return cmd
}

// --- internals ---

func handleStatusRunE(cmd *cobra.Command, _ []string) error {
	resolved := creds.DefaultResolver().Resolve(cmd.Context())

	out := cmd.OutOrStdout()

	switch resolved.Source {
	case creds.SourceEnvironment:
		notify.Successf(out, "credentials resolved from environment variables")
	case creds.SourceVault:
		notify.Successf(out, "credentials resolved from vault")
	default:
		notify.Warningf(out, "no credentials found; the dashboard will serve static content only")
	}

	reportVaultHealth(cmd)

	return nil
}

// reportVaultHealth probes the configured Vault server so operators can tell
// an unreachable backend apart from an unprovisioned one.
func reportVaultHealth(cmd *cobra.Command) {
	address := os.Getenv("VAULT_ADDR")
	token := os.Getenv("VAULT_TOKEN")

	if address == "" || token == "" {
		return
	}

	out := cmd.OutOrStdout()

	client, err := vaultclient.New(address, token)
	if err != nil {
		notify.Warningf(out, "vault is configured but the client could not be created: %v", err)

		return
	}

	healthErr := client.Health(cmd.Context())
	if healthErr != nil {
		notify.Warningf(out, "vault is configured but unhealthy: %v", healthErr)

		return
	}

	notify.Infof(out, "vault is reachable at %s", address)
}
