package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assignment-validator/internal/infrastructure/env"
	"assignment-validator/internal/infrastructure/logger"
	"assignment-validator/internal/infrastructure/mockapi"
)

func main() {
	envService := env.NewEnvService()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logCfg := logger.DefaultConfig()
	logCfg.Dir = envService.GetWithDefault("LOG_DIR", logCfg.Dir)
	logCfg.Level = envService.GetWithDefault("LOG_LEVEL", logCfg.Level)
	logCfg.Name = "mockapi"

	appLog, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer appLog.Close()

	cfg := mockapi.DefaultConfig()
	cfg.ReadyAfter = envService.GetInt("MOCKAPI_READY_AFTER", cfg.ReadyAfter)
	cfg.Logger = appLog

	addr := envService.GetWithDefault("MOCKAPI_ADDR", ":8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           mockapi.NewServer(cfg).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	appLog.Info("Mock API listening", "addr", addr, "readyAfter", cfg.ReadyAfter)
	log.Printf("Mock API listening on %s (ready after %d polls)", addr, cfg.ReadyAfter)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("Mock API stopped", "error", err)
		log.Fatalf("Mock API stopped: %v", err)
	}
}
