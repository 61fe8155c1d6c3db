package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assignment-validator/internal/domain/entity"
)

// Failure is what the operator sees when a run ends with an error. Debug holds
// the raw response body when the service sent something unparseable.
type Failure struct {
	Message string
	Debug   []byte
}

func DescribeError(err error) Failure {
	var (
		statusErr  *entity.UnexpectedStatusError
		schemaErr  *entity.SchemaError
		timeoutErr *entity.TimeoutError
	)

	switch {
	case errors.As(err, &statusErr):
		return Failure{Message: fmt.Sprintf("Unexpected status code when %s: %d", statusErr.Operation, statusErr.StatusCode)}
	case errors.As(err, &schemaErr):
		return Failure{
			Message: fmt.Sprintf("The response data does not match the expected schema: %v", schemaErr.Err),
			Debug:   schemaErr.Body,
		}
	case errors.As(err, &timeoutErr):
		return Failure{Message: fmt.Sprintf("Timeout: Facts not ready after %s", humanizeDuration(timeoutErr.Timeout))}
	case errors.Is(err, entity.ErrTimeout):
		return Failure{Message: "Timeout: Facts not ready"}
	case errors.Is(err, entity.ErrInvalidBaseURL):
		return Failure{Message: fmt.Sprintf("Please enter a valid API URL (%v)", err)}
	case errors.Is(err, context.Canceled):
		return Failure{Message: "Validation cancelled"}
	default:
		return Failure{Message: fmt.Sprintf("An unexpected error occurred: %v", err)}
	}
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d == time.Minute:
		return "1 minute"
	case d > 0 && d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	case d == time.Second:
		return "1 second"
	case d > 0 && d%time.Second == 0:
		return fmt.Sprintf("%d seconds", d/time.Second)
	default:
		return d.String()
	}
}
