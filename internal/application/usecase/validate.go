package usecase

import (
	"context"
	"time"

	"assignment-validator/internal/application/port/input"
	"assignment-validator/internal/application/port/output"
	"assignment-validator/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	DefaultPollInterval = time.Second
	DefaultTimeout      = 5 * time.Minute
)

var _ input.Validator = (*ValidateUseCase)(nil)

type ValidateUseCase struct {
	apis         output.FactsAPIFactory
	ui           output.UserInteractionPort
	logger       output.LoggerPort
	submission   entity.Submission
	pollInterval time.Duration
	timeout      time.Duration
	now          func() time.Time
}

// ValidateConfig durations that are zero or negative fall back to the defaults.
type ValidateConfig struct {
	Submission   entity.Submission
	PollInterval time.Duration
	Timeout      time.Duration
}

func DefaultValidateConfig() ValidateConfig {
	return ValidateConfig{
		Submission:   entity.DefaultSubmission(),
		PollInterval: DefaultPollInterval,
		Timeout:      DefaultTimeout,
	}
}

func NewValidateUseCase(
	apis output.FactsAPIFactory,
	ui output.UserInteractionPort,
	logger output.LoggerPort,
	cfg ValidateConfig,
) *ValidateUseCase {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Submission.Question == "" {
		cfg.Submission = entity.DefaultSubmission()
	}

	return &ValidateUseCase{
		apis:         apis,
		ui:           ui,
		logger:       logger,
		submission:   cfg.Submission,
		pollInterval: cfg.PollInterval,
		timeout:      cfg.Timeout,
		now:          time.Now,
	}
}

// Execute submits the question and documents to the service at baseURL and
// polls until its facts are done. A done status always wins, even when it is
// observed after the deadline.
func (uc *ValidateUseCase) Execute(ctx context.Context, baseURL string) (*entity.ValidationResult, error) {
	runID := uuid.NewString()
	log := uc.logger.WithFields(map[string]any{"runID": runID, "baseURL": baseURL})

	api, err := uc.apis.New(baseURL, runID)
	if err != nil {
		return nil, err
	}

	uc.ui.ShowProgress(ctx, "Submitting question and documents to the API...")
	log.Info("Submitting question and documents", "documents", len(uc.submission.Documents))

	if _, err := api.SubmitQuestionAndDocuments(ctx, uc.submission); err != nil {
		log.Error("Submit failed", "error", err)
		return nil, err
	}

	start := uc.now()
	for poll := 1; ; poll++ {
		uc.ui.ShowProgress(ctx, "Polling for facts...")

		data, err := api.GetQuestionAndFacts(ctx)
		if err != nil {
			log.Error("Poll failed", "poll", poll, "error", err)
			return nil, err
		}

		log.Debug("Polled facts", "poll", poll, "status", data.Status, "facts", len(data.Facts))

		if data.Status.IsDone() {
			elapsed := uc.now().Sub(start)
			log.Info("Facts ready", "polls", poll, "elapsed", elapsed.String(), "facts", len(data.Facts))
			return &entity.ValidationResult{
				RunID:    runID,
				BaseURL:  baseURL,
				Question: data.Question,
				Facts:    data.Facts,
				Polls:    poll,
				Elapsed:  elapsed,
			}, nil
		}

		if uc.now().Sub(start) > uc.timeout {
			log.Warn("Timed out waiting for facts", "polls", poll, "timeout", uc.timeout.String())
			return nil, &entity.TimeoutError{Timeout: uc.timeout, Polls: poll}
		}

		if err := uc.wait(ctx); err != nil {
			return nil, err
		}
	}
}

func (uc *ValidateUseCase) wait(ctx context.Context) error {
	timer := time.NewTimer(uc.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
