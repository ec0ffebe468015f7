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

	"github.com/joho/godotenv"

	"github.com/panelgrid/panelgrid-backend/internal/app"
	"github.com/panelgrid/panelgrid-backend/internal/db"
	"github.com/panelgrid/panelgrid-backend/internal/observability"
	"github.com/panelgrid/panelgrid-backend/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres migration failed", "error", err)
	}

	application := app.New(postgresService.DB(), log)

	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: application.Config.ServiceName,
		Environment: application.Config.Environment,
	})

	srv := &http.Server{
		Addr:    ":" + application.Config.Port,
		Handler: application.Router,
	}

	go func() {
		log.Info("Starting HTTP server", "port", application.Config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("HTTP shutdown error", "error", err)
	}
	if err := shutdownOtel(ctx); err != nil {
		log.Warn("OTel shutdown error", "error", err)
	}
}
