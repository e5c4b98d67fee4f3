package model

import (
	"time"

	"github.com/google/uuid"
)

// EmbeddingDimension is the dimension of the embedding vector.
// OpenAI text-embedding-3-small uses 1536 dimensions.
const EmbeddingDimension = 1536

// ExchangeID is a UUID-based identifier for Exchange
type ExchangeID string

// NewExchangeID generates a new UUID v4 ExchangeID
func NewExchangeID() ExchangeID {
	return ExchangeID(uuid.New().String())
}

// Exchange represents one remembered conversational turn: the user's input,
// the generated reply, and the input's embedding for similarity search.
// An Exchange is immutable once persisted.
type Exchange struct {
	ID        ExchangeID
	Content   string    // The original user input
	Embedding []float32 // Vector embedding of Content
	Response  string    // The generated reply tied to Content
	CreatedAt time.Time
}

// SimilarityMatch is a transient result of a similarity search. It is never
// persisted; callers discard it after context assembly.
type SimilarityMatch struct {
	Content string
	Score   float64 // Cosine similarity in [0,1], higher is more relevant
}
