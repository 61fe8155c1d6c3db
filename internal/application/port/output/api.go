package output

import (
	"context"

	"assignment-validator/internal/domain/entity"
)

// FactsAPIPort talks to the candidate service under validation.
type FactsAPIPort interface {
	SubmitQuestionAndDocuments(ctx context.Context, sub entity.Submission) (*entity.SubmitResponse, error)
	GetQuestionAndFacts(ctx context.Context) (*entity.QuestionAndFacts, error)
}

// FactsAPIFactory builds a client bound to one base URL and run.
type FactsAPIFactory interface {
	New(baseURL, runID string) (FactsAPIPort, error)
}
