package input

import (
	"context"

	"assignment-validator/internal/domain/entity"
)

type Validator interface {
	Execute(ctx context.Context, baseURL string) (*entity.ValidationResult, error)
}
