package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/codcodedob/aura/pkg/domain/model"
)

type exchangeRepository struct {
	mu      sync.RWMutex
	entries map[model.ExchangeID]*model.Exchange
}

func newExchangeRepository() *exchangeRepository {
	return &exchangeRepository{
		entries: make(map[model.ExchangeID]*model.Exchange),
	}
}

func copyExchange(ex *model.Exchange) *model.Exchange {
	copied := &model.Exchange{
		ID:        ex.ID,
		Content:   ex.Content,
		Response:  ex.Response,
		CreatedAt: ex.CreatedAt,
	}
	if ex.Embedding != nil {
		copied.Embedding = make([]float32, len(ex.Embedding))
		copy(copied.Embedding, ex.Embedding)
	}
	return copied
}

func (r *exchangeRepository) Insert(ctx context.Context, ex *model.Exchange) (*model.Exchange, error) {
	if len(ex.Embedding) != model.EmbeddingDimension {
		return nil, goerr.Wrap(ErrDimensionMismatch, "cannot insert exchange",
			goerr.V("got", len(ex.Embedding)),
			goerr.V("want", model.EmbeddingDimension),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyExchange(ex)
	if created.ID == "" {
		created.ID = model.NewExchangeID()
	}
	created.CreatedAt = time.Now().UTC()

	r.entries[created.ID] = created
	return copyExchange(created), nil
}

func (r *exchangeRepository) Get(ctx context.Context, id model.ExchangeID) (*model.Exchange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ex, exists := r.entries[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "exchange not found", goerr.V("exchangeID", id))
	}

	return copyExchange(ex), nil
}

func (r *exchangeRepository) List(ctx context.Context) ([]*model.Exchange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Exchange, 0, len(r.entries))
	for _, ex := range r.entries {
		result = append(result, copyExchange(ex))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *exchangeRepository) FindByEmbedding(ctx context.Context, embedding []float32, threshold float64, limit int) ([]*model.SimilarityMatch, error) {
	if len(embedding) != model.EmbeddingDimension {
		return nil, goerr.Wrap(ErrDimensionMismatch, "cannot search exchanges",
			goerr.V("got", len(embedding)),
			goerr.V("want", model.EmbeddingDimension),
		)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		exchange *model.Exchange
		score    float64
	}

	var candidates []scored
	for _, ex := range r.entries {
		if len(ex.Embedding) != len(embedding) {
			continue
		}
		s := cosineSimilarity(embedding, ex.Embedding)
		if s < threshold {
			continue
		}
		candidates = append(candidates, scored{exchange: ex, score: s})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].exchange.CreatedAt.After(candidates[j].exchange.CreatedAt)
	})

	if limit < 0 {
		limit = 0
	}
	if limit > len(candidates) {
		limit = len(candidates)
	}

	result := make([]*model.SimilarityMatch, limit)
	for i := 0; i < limit; i++ {
		result[i] = &model.SimilarityMatch{
			Content: candidates[i].exchange.Content,
			Score:   candidates[i].score,
		}
	}

	return result, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
