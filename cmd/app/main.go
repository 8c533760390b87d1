package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dronedelivery/cmd"

	"github.com/labstack/gommon/log"
)

const (
	warmupTimeout   = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs)
	if err != nil {
		log.Fatalf("Error creating application: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager := app.CreateJobManager()
	warmupCtx, cancel := context.WithTimeout(ctx, warmupTimeout)
	if err := jobManager.Warmup(warmupCtx); err != nil {
		app.Logger().Warn("Region data warmup failed, loading on first request", "error", err)
	}
	cancel()

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Error creating router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()
	app.Logger().Info("Server started", "port", port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		app.Logger().Error("Server shutdown failed", "error", err)
	}
}
