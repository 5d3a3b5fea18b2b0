package creds

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/ui/notify"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/creds"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

// NewProvisionCmd wires the creds provision command using the shared runtime container.
func NewProvisionCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cfg := viper.New()

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Store GitHub App credentials in Vault",
		Long: "Validate the GitHub App credential bundle, write it to the Vault KV " +
			"store, and verify every field by reading it back.",
		SilenceUsage: true,
	}

	cmd.Flags().String(appIDFlagName, "", "GitHub App ID")
	cmd.Flags().String(installationIDFlagName, "", "GitHub App installation ID")
	cmd.Flags().String(privateKeyFileFlagName, "", "Path to the GitHub App private key PEM file")
	addVaultFlags(cmd, cfg)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector di.Injector) error {
			return handleProvisionRunE(cmd, cfg, injector)
		})
	}

	return cmd
}

// --- internals ---

func handleProvisionRunE(cmd *cobra.Command, cfg *viper.Viper, injector di.Injector) error {
	bundle, err := bundleFromFlags(cmd)
	if err != nil {
		return err
	}

	// Fail on bad input before touching the network.
	err = bundle.Validate()
	if err != nil {
		return err
	}

	address := cfg.GetString(vaultAddrFlagName)
	token := cfg.GetString(vaultTokenFlagName)

	factory, err := di.ResolveSecretBackendFactory(injector)
	if err != nil {
		return err
	}

	backend, err := factory(address, token)
	if err != nil {
		return fmt.Errorf("failed to create vault client: %w", err)
	}

	out := cmd.OutOrStdout()
	notify.Titlef(out, "🔐", "Provision credentials...")
	notify.Activityf(out, "writing credential bundle to %s/%s", creds.VaultMount, creds.VaultSecretPath)

	result, err := creds.Provision(cmd.Context(), backend, bundle)
	if err != nil {
		return err
	}

	notify.Successf(out, "credential bundle stored and verified (%d fields)", len(result.VerifiedFields))

	return nil
}

func bundleFromFlags(cmd *cobra.Command) (creds.Bundle, error) {
	appID, _ := cmd.Flags().GetString(appIDFlagName)
	installationID, _ := cmd.Flags().GetString(installationIDFlagName)
	keyFile, _ := cmd.Flags().GetString(privateKeyFileFlagName)

	if strings.TrimSpace(keyFile) == "" {
		return creds.Bundle{}, fmt.Errorf("%w: private key file is required", creds.ErrInvalidInput)
	}

	keyBytes, readErr := os.ReadFile(keyFile)
	if readErr != nil {
		return creds.Bundle{}, fmt.Errorf("%w: failed to read private key file: %w", creds.ErrInvalidInput, readErr)
	}

	return creds.Bundle{
		AppID:          appID,
		InstallationID: installationID,
		PrivateKey:     creds.NormalizePrivateKey(string(keyBytes)),
	}, nil
}
