package model

import "context"

// CompletionService produces free text for a prompt. Adapters bound every call
// with a configured timeout; failures are recovered inside the nodes (keyword
// fallback, fixed apology) and never surfaced to the caller.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
