// Package dashboard wires the command that serves the portfolio web application.
package dashboard

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDashboardCmd creates the parent dashboard command.
func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Run the portfolio dashboard",
		Long:         "Run the portfolio web application that consumes the provisioned credentials.",
		Args:         cobra.NoArgs,
		RunE:         handleDashboardRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())

	return cmd
}

// --- internals ---

func handleDashboardRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying dashboard command help: %w", err)
	}

	return nil
}
