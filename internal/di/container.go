package di

import (
	"context"
	"fmt"
	"time"

	"assignment-validator/internal/application/port/input"
	"assignment-validator/internal/application/port/output"
	"assignment-validator/internal/application/usecase"
	"assignment-validator/internal/infrastructure/api/httpapi"
	"assignment-validator/internal/infrastructure/logger"
	"assignment-validator/internal/infrastructure/userinteraction"

	"github.com/fatih/color"
)

type Container struct {
	Logger    output.LoggerPort
	UI        output.UserInteractionPort
	APIs      output.FactsAPIFactory
	Validator input.Validator
}

type Config struct {
	LogDir       string
	LogLevel     string
	HTTPTimeout  time.Duration
	PollInterval time.Duration
	Timeout      time.Duration
	NoColor      bool

	// UI replaces the stdin/stdout console when set.
	UI output.UserInteractionPort
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	logCfg := logger.DefaultConfig()
	if cfg.LogDir != "" {
		logCfg.Dir = cfg.LogDir
	}
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}

	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	ui := cfg.UI
	if ui == nil {
		ui = userinteraction.NewConsoleUserInteraction()
	}

	apiCfg := httpapi.DefaultConfig()
	if cfg.HTTPTimeout > 0 {
		apiCfg.Timeout = cfg.HTTPTimeout
	}
	apiCfg.Logger = log
	apis := httpapi.NewFactory(apiCfg)

	// Non-positive durations fall back to the use case defaults.
	validateCfg := usecase.DefaultValidateConfig()
	validateCfg.PollInterval = cfg.PollInterval
	validateCfg.Timeout = cfg.Timeout

	uc := usecase.NewValidateUseCase(apis, ui, log, validateCfg)

	return &Container{
		Logger:    log,
		UI:        ui,
		APIs:      apis,
		Validator: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
