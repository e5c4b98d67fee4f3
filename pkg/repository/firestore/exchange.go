package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/codcodedob/aura/pkg/domain/model"
)

// exchangeDoc is the Firestore document representation of model.Exchange.
// Embedding is stored as firestore.Vector32 for FindNearest vector search.
type exchangeDoc struct {
	ID        model.ExchangeID   `firestore:"ID"`
	Content   string             `firestore:"Content"`
	Embedding firestore.Vector32 `firestore:"Embedding,omitempty"`
	Response  string             `firestore:"Response"`
	CreatedAt time.Time          `firestore:"CreatedAt"`
}

func toExchangeDoc(ex *model.Exchange) *exchangeDoc {
	doc := &exchangeDoc{
		ID:        ex.ID,
		Content:   ex.Content,
		Response:  ex.Response,
		CreatedAt: ex.CreatedAt,
	}
	if len(ex.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(ex.Embedding)
	}
	return doc
}

func fromExchangeDoc(d *exchangeDoc) *model.Exchange {
	ex := &model.Exchange{
		ID:        d.ID,
		Content:   d.Content,
		Response:  d.Response,
		CreatedAt: d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		ex.Embedding = []float32(d.Embedding)
	}
	return ex
}

type exchangeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newExchangeRepository(client *firestore.Client) *exchangeRepository {
	return &exchangeRepository{client: client}
}

func (r *exchangeRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "exchanges")
}

func (r *exchangeRepository) Insert(ctx context.Context, ex *model.Exchange) (*model.Exchange, error) {
	if len(ex.Embedding) != model.EmbeddingDimension {
		return nil, goerr.Wrap(ErrDimensionMismatch, "cannot insert exchange",
			goerr.V("got", len(ex.Embedding)),
			goerr.V("want", model.EmbeddingDimension),
		)
	}

	created := &model.Exchange{
		ID:        ex.ID,
		Content:   ex.Content,
		Embedding: ex.Embedding,
		Response:  ex.Response,
		CreatedAt: time.Now().UTC(),
	}
	if created.ID == "" {
		created.ID = model.NewExchangeID()
	}

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toExchangeDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to insert exchange", goerr.V("exchangeID", created.ID))
	}

	return created, nil
}

func (r *exchangeRepository) Get(ctx context.Context, id model.ExchangeID) (*model.Exchange, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "exchange not found", goerr.V("exchangeID", id))
		}
		return nil, goerr.Wrap(err, "failed to get exchange", goerr.V("exchangeID", id))
	}

	var d exchangeDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal exchange")
	}

	return fromExchangeDoc(&d), nil
}

func (r *exchangeRepository) List(ctx context.Context) ([]*model.Exchange, error) {
	iter := r.collection().
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	exchanges := make([]*model.Exchange, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate exchanges")
		}

		var d exchangeDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal exchange")
		}

		exchanges = append(exchanges, fromExchangeDoc(&d))
	}

	return exchanges, nil
}

func (r *exchangeRepository) FindByEmbedding(ctx context.Context, embedding []float32, threshold float64, limit int) ([]*model.SimilarityMatch, error) {
	if len(embedding) != model.EmbeddingDimension {
		return nil, goerr.Wrap(ErrDimensionMismatch, "cannot search exchanges",
			goerr.V("got", len(embedding)),
			goerr.V("want", model.EmbeddingDimension),
		)
	}

	// Cosine distance = 1 - cosine similarity, so a similarity threshold
	// maps to a distance ceiling.
	distanceThreshold := 1 - threshold

	vq := r.collection().FindNearest("Embedding", firestore.Vector32(embedding), limit,
		firestore.DistanceMeasureCosine,
		&firestore.FindNearestOptions{
			DistanceThreshold:   &distanceThreshold,
			DistanceResultField: "vector_distance",
		})

	iter := vq.Documents(ctx)
	defer iter.Stop()

	matches := make([]*model.SimilarityMatch, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate exchange vector search results")
		}

		var d exchangeDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal exchange from vector search")
		}

		score := 0.0
		if v, ok := doc.Data()["vector_distance"].(float64); ok {
			score = 1 - v
		}

		matches = append(matches, &model.SimilarityMatch{
			Content: d.Content,
			Score:   score,
		})
	}

	return matches, nil
}
