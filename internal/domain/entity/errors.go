package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTimeout        = errors.New("facts not ready before timeout")
	ErrInvalidBaseURL = errors.New("invalid API base URL")
)

const (
	OperationSubmit   = "submitting question and documents"
	OperationGetFacts = "getting question and facts"
)

// UnexpectedStatusError is returned when an endpoint answers with anything
// other than 200 OK.
type UnexpectedStatusError struct {
	Operation  string
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status code when %s: %d", e.Operation, e.StatusCode)
}

// SchemaError is returned when a response body does not match the expected
// shape. Body keeps the raw payload for debugging.
type SchemaError struct {
	Operation string
	Body      []byte
	Err       error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response data does not match the expected schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that the facts never reached the done status. It
// matches ErrTimeout with errors.Is.
type TimeoutError struct {
	Timeout time.Duration
	Polls   int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("facts not ready after %s (%d polls)", e.Timeout, e.Polls)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}
