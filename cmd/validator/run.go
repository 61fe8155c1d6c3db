package main

import (
	"context"
	"errors"

	"assignment-validator/internal/application/usecase"
	"assignment-validator/internal/di"
)

const (
	title  = "Assignment Validator"
	prompt = "Enter the API URL of your assignment:"
)

var errValidationFailed = errors.New("validation failed")

// run keeps asking for a URL until the operator declines another round. It
// returns errValidationFailed when the last run did not produce facts.
func run(ctx context.Context, c *di.Container, defaultURL string) error {
	c.UI.ShowTitle(ctx, title)

	for {
		baseURL, err := c.UI.AskBaseURL(ctx, prompt, defaultURL)
		if err != nil {
			return err
		}

		c.Logger.Info("Validation started", "baseURL", baseURL)

		result, err := c.Validator.Execute(ctx, baseURL)
		if err != nil {
			c.Logger.Error("Validation failed", "baseURL", baseURL, "error", err)

			failure := usecase.DescribeError(err)
			c.UI.ShowError(ctx, failure.Message)
			c.UI.ShowDebugData(ctx, failure.Debug)
		} else {
			c.Logger.Info("Validation completed", "runID", result.RunID, "polls", result.Polls, "facts", len(result.Facts))

			// done with null facts is still a success; ShowFacts prints "(no facts returned)".
			c.UI.ShowSuccess(ctx, "Facts retrieved successfully!")
			c.UI.ShowFacts(ctx, result.Facts)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		again, confirmErr := c.UI.Confirm(ctx, "Validate another URL?")
		if confirmErr != nil || !again {
			if err != nil {
				return errValidationFailed
			}
			return confirmErr
		}
		defaultURL = baseURL
	}
}
