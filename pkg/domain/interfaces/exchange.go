package interfaces

import (
	"context"

	"github.com/codcodedob/aura/pkg/domain/model"
)

// ExchangeRepository defines the interface for Exchange data persistence
type ExchangeRepository interface {
	// Insert persists a new exchange. The repository assigns the ID and
	// creation timestamp; the exchange becomes visible to subsequent
	// searches atomically.
	Insert(ctx context.Context, ex *model.Exchange) (*model.Exchange, error)

	// Get retrieves an exchange by ID
	Get(ctx context.Context, id model.ExchangeID) (*model.Exchange, error)

	// List retrieves all exchanges, sorted by CreatedAt descending
	List(ctx context.Context) ([]*model.Exchange, error)

	// FindByEmbedding performs vector similarity search using cosine
	// similarity. Returns up to limit matches with score >= threshold,
	// ordered by descending score; ties are broken by recency.
	FindByEmbedding(ctx context.Context, embedding []float32, threshold float64, limit int) ([]*model.SimilarityMatch, error)
}
