package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sahay-inc/sahay/internal/interfaces/cli/admin"
	"github.com/sahay-inc/sahay/internal/interfaces/cli/migrate"
	"github.com/sahay-inc/sahay/internal/interfaces/cli/server"
	"github.com/sahay-inc/sahay/internal/interfaces/cli/worker"
)

// @title SAHAY API
// @version 1.0
// @description Backend for the SAHAY public health companion: offline-first sync, symptom triage, teleconsultations, complaint tracking with SLA escalation, and k-anonymised analytics.

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "sahay",
		Short: "SAHAY - public health backend",
		Long:  `SAHAY is the backend for the public health companion: API server, background worker, migration tools, and administrative commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
