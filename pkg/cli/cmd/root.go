// Package cmd assembles the portfolio CLI command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/cmd/cluster"
	credscmd "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/cmd/creds"
	dashboardcmd "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/cmd/dashboard"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/cmd/stack"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := di.New(di.DefaultModule)

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio is a CLI for provisioning a local DevSecOps demo environment",
		Long: "Portfolio provisions a local Kubernetes demo environment with GitOps and " +
			"secrets management, stores GitHub App credentials in Vault, and serves a " +
			"dashboard that consumes them.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(cluster.NewClusterCmd(runtimeContainer))
	cmd.AddCommand(stack.NewStackCmd(runtimeContainer))
	cmd.AddCommand(credscmd.NewCredsCmd(runtimeContainer))
	cmd.AddCommand(dashboardcmd.NewDashboardCmd())

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
