// Package llm adapts LLM providers to the engine's CompletionService contract:
// one prompt in, free text out, bounded by a configured timeout.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcs-core/server/internal/agent/model"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config carries everything needed to build a completion backend.
type Config struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration

	GeminiAPIKey  string
	GeminiBaseURL string
	OpenAIAPIKey  string
}

// New builds the completion backend selected by Provider.
func New(ctx context.Context, cfg Config) (model.CompletionService, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAICompletion(cfg)
	case ProviderGemini, "":
		return NewGeminiCompletion(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}

func callTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}
