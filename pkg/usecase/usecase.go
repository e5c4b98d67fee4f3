package usecase

import (
	"time"

	"github.com/m-mizutani/gollem"

	"github.com/codcodedob/aura/pkg/domain/interfaces"
)

type UseCases struct {
	repo interfaces.Repository
	Ask  *AskUseCase
}

type Option func(*AskUseCase)

// WithSimilarityThreshold sets the minimum similarity score for a stored
// exchange to be retrieved as context. Default: 0.75.
func WithSimilarityThreshold(threshold float64) Option {
	return func(uc *AskUseCase) {
		uc.threshold = threshold
	}
}

// WithSearchLimit caps the number of retrieved exchanges. Default: 5.
func WithSearchLimit(limit int) Option {
	return func(uc *AskUseCase) {
		uc.limit = limit
	}
}

// WithSystemPrompt replaces the built-in persona instruction.
func WithSystemPrompt(prompt string) Option {
	return func(uc *AskUseCase) {
		uc.systemPrompt = prompt
	}
}

// WithCallTimeout bounds each external model call so a stalled provider
// cannot block a request indefinitely. Zero disables the bound.
func WithCallTimeout(timeout time.Duration) Option {
	return func(uc *AskUseCase) {
		uc.callTimeout = timeout
	}
}

func New(repo interfaces.Repository, llmClient gollem.LLMClient, opts ...Option) *UseCases {
	return &UseCases{
		repo: repo,
		Ask:  NewAskUseCase(repo, llmClient, opts...),
	}
}
