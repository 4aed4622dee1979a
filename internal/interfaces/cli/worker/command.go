package worker

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sahay-inc/sahay/internal/infrastructure/config"
	"github.com/sahay-inc/sahay/internal/infrastructure/database"
	httpInterface "github.com/sahay-inc/sahay/internal/interfaces/http"
	"github.com/sahay-inc/sahay/internal/shared/biztime"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

var env string

// NewCommand returns the worker command. It runs the scheduled jobs
// (SLA sweep, anchor retry, analytics flush, view refresh, outbox
// dispatch) without serving HTTP, for deployments that separate the
// API process from the background process. Job locks in Redis keep a
// worker and an API server from running the same job twice.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the background jobs without the HTTP server",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting worker", "environment", env)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	// The container builds a gin engine the worker never serves; release
	// mode keeps its startup output quiet.
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	container := httpInterface.NewContainer(database.Get(), cfg, log)
	container.Start()

	log.Infow("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Infow("received signal, shutting down", "signal", sig.String())

	container.Shutdown()

	log.Infow("worker stopped")
	return nil
}
