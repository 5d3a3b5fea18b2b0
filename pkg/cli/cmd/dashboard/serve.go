package dashboard

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dashboardapp "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/dashboard"
)

// NewServeCmd wires the dashboard serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the dashboard",
		Long:         "Resolve credentials and serve the dashboard until interrupted.",
		SilenceUsage: true,
		RunE:         handleServeRunE,
	}

	return cmd
}

// --- internals ---

func handleServeRunE(*cobra.Command, []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	server := dashboardapp.Build(dashboardapp.LoadConfig(), logger)

	return server.Listen()
}
