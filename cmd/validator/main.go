package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assignment-validator/internal/application/port/output"
	"assignment-validator/internal/application/usecase"
	"assignment-validator/internal/di"
	"assignment-validator/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	container, err := di.NewContainer(ctx, configFromEnv(envService))
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}

	err = run(ctx, container, envService.Get("VALIDATOR_BASE_URL"))
	container.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func configFromEnv(cfg output.ConfigPort) di.Config {
	return di.Config{
		LogDir:       cfg.GetWithDefault("LOG_DIR", "log"),
		LogLevel:     cfg.GetWithDefault("LOG_LEVEL", "info"),
		HTTPTimeout:  cfg.GetDuration("VALIDATOR_HTTP_TIMEOUT", 30*time.Second),
		PollInterval: cfg.GetDuration("VALIDATOR_POLL_INTERVAL", usecase.DefaultPollInterval),
		Timeout:      cfg.GetDuration("VALIDATOR_TIMEOUT", usecase.DefaultTimeout),
		NoColor:      cfg.GetBool("VALIDATOR_NO_COLOR", false),
	}
}
