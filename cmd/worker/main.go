package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/infrastructure/config"
	"github.com/sahay-inc/sahay/internal/infrastructure/database"
	httpInterface "github.com/sahay-inc/sahay/internal/interfaces/http"
	"github.com/sahay-inc/sahay/internal/shared/biztime"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// Standalone background worker: runs the scheduled jobs (SLA sweep, anchor
// retry, analytics flush, view refresh, outbox dispatch) without serving
// HTTP. Redis job locks keep this process and any API instance from running
// the same job concurrently.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting worker", "environment", env)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	// The container builds a gin engine this process never serves.
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	container := httpInterface.NewContainer(database.Get(), cfg, log)
	container.Start()

	log.Infow("worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig.String())

	container.Shutdown()

	log.Infow("worker stopped")
}
