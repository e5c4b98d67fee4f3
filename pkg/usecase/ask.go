package usecase

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/codcodedob/aura/pkg/domain/interfaces"
	"github.com/codcodedob/aura/pkg/domain/model"
	"github.com/codcodedob/aura/pkg/utils/errutil"
	"github.com/codcodedob/aura/pkg/utils/logging"
)

//go:embed prompt/ask_system.md
var askSystemPrompt string

const (
	// DefaultSimilarityThreshold is the minimum similarity score for a
	// stored exchange to be considered relevant.
	DefaultSimilarityThreshold = 0.75

	// DefaultSearchLimit is the maximum number of retrieved exchanges.
	DefaultSearchLimit = 5
)

// AskUseCase handles one retrieval-augmented conversation turn: embed the
// input, retrieve similar past exchanges, generate a reply conditioned on
// them, and persist the new exchange for future retrieval.
type AskUseCase struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient

	threshold    float64
	limit        int
	systemPrompt string
	callTimeout  time.Duration
}

// NewAskUseCase creates a new AskUseCase. All collaborators must be ready
// before the first Ask call; the use case holds no other state.
func NewAskUseCase(repo interfaces.Repository, llmClient gollem.LLMClient, opts ...Option) *AskUseCase {
	uc := &AskUseCase{
		repo:         repo,
		llmClient:    llmClient,
		threshold:    DefaultSimilarityThreshold,
		limit:        DefaultSearchLimit,
		systemPrompt: askSystemPrompt,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Ask runs one conversation turn and returns the generated reply.
//
// A failed memory search degrades to an empty context instead of failing the
// request, and a failed persistence still returns the already-produced reply.
// Both degradations are logged and reported so silent memory loss stays
// visible to operators.
func (uc *AskUseCase) Ask(ctx context.Context, input string) (string, error) {
	logger := logging.From(ctx)

	if input == "" {
		return "", goerr.Wrap(ErrInvalidInput, "missing input")
	}

	embedding, err := uc.generateEmbedding(ctx, input)
	if err != nil {
		return "", err
	}

	matches, err := uc.repo.Exchange().FindByEmbedding(ctx, embedding, uc.threshold, uc.limit)
	if err != nil {
		// Memory retrieval augments but must never block generation.
		errutil.Handle(ctx, err, "memory search failed, answering without context")
		matches = nil
	}

	logger.Debug("retrieved memory context", "matches", len(matches))

	answer, err := uc.generateReply(ctx, matches, input)
	if err != nil {
		return "", err
	}

	if _, err := uc.repo.Exchange().Insert(ctx, &model.Exchange{
		Content:   input,
		Embedding: embedding,
		Response:  answer,
	}); err != nil {
		// The answer takes priority over the memory write.
		errutil.Handle(ctx, goerr.Wrap(ErrPersistenceFailed, "failed to persist exchange",
			goerr.V("cause", err.Error()),
		), "exchange not persisted, reply still returned")
	}

	return answer, nil
}

// generateEmbedding converts the input text to a query vector via the LLM
// client, validating the provider response at the boundary.
func (uc *AskUseCase) generateEmbedding(ctx context.Context, input string) ([]float32, error) {
	ctx, cancel := uc.boundCall(ctx)
	defer cancel()

	embeddings, err := uc.llmClient.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{input})
	if err != nil {
		return nil, goerr.Wrap(ErrEmbeddingFailed, "failed to generate query embedding",
			goerr.V("cause", err.Error()),
		)
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, goerr.Wrap(ErrEmbeddingFailed, "embedding provider returned empty result")
	}

	embedding := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

// generateReply builds the generation request from the retrieved matches and
// the user input, and executes a single completion call.
func (uc *AskUseCase) generateReply(ctx context.Context, matches []*model.SimilarityMatch, input string) (string, error) {
	ctx, cancel := uc.boundCall(ctx)
	defer cancel()

	agent := gollem.New(uc.llmClient,
		gollem.WithSystemPrompt(uc.systemPrompt),
	)

	resp, err := agent.Execute(ctx, gollem.Text(buildUserContent(matches, input)))
	if err != nil {
		return "", goerr.Wrap(ErrGenerationFailed, "failed to generate completion",
			goerr.V("cause", err.Error()),
		)
	}

	answer := strings.Join(resp.Texts, "\n")
	if answer == "" {
		return "", goerr.Wrap(ErrGenerationFailed, "generation provider returned empty result")
	}

	return answer, nil
}

// buildUserContent concatenates matched contents one per line, in the order
// returned by the store, and appends the "User:" line. The context block and
// its separator are omitted entirely when there are no matches.
func buildUserContent(matches []*model.SimilarityMatch, input string) string {
	userLine := "User: " + input
	if len(matches) == 0 {
		return userLine
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, m.Content)
	}

	return strings.Join(lines, "\n") + "\n\n" + userLine
}

func (uc *AskUseCase) boundCall(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.callTimeout)
}
