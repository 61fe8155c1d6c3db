package output

import "context"

type UserInteractionPort interface {
	AskBaseURL(ctx context.Context, prompt, defaultURL string) (string, error)
	Confirm(ctx context.Context, question string) (bool, error)

	ShowTitle(ctx context.Context, title string)
	ShowProgress(ctx context.Context, message string)
	ShowSuccess(ctx context.Context, message string)
	ShowError(ctx context.Context, message string)
	ShowDebugData(ctx context.Context, raw []byte)
	ShowFacts(ctx context.Context, facts []string)
}
