package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaviapp/kavi/internal/rag/embedding"
	"github.com/kaviapp/kavi/internal/rag/vectorDB"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var log = logger_i.NewLogger("queryBuilder")

// Result is what downstream consumers see. A missing collection is not
// an error return; it surfaces in the Errors field so callers can keep
// going and report it to the user.
type Result struct {
	QueryText string   `json:"query,omitempty"`
	Documents []string `json:"results,omitempty"`
	Errors    []string `json:"error,omitempty"`
}

func (r Result) Failed() bool {
	return len(r.Errors) > 0
}

type Builder struct {
	embedder embedding.Embedder
	store    vectorDB.DataProcessor
}

func NewBuilder(embedder embedding.Embedder, store vectorDB.DataProcessor) *Builder {
	return &Builder{embedder: embedder, store: store}
}

// MakeQuery embeds prefix+summary and retrieves the topK nearest
// chunks from the collection. A collection that was never ingested
// yields Result.Errors = ["Collection does not exist"] and a nil
// error.
func (b *Builder) MakeQuery(ctx context.Context, prefix string, summary string, topK int, collection string) (Result, error) {
	queryText := prefix + summary

	vectors, err := b.embedder.BatchEmbedding(ctx, []string{queryText})
	if err != nil {
		return Result{}, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return Result{}, fmt.Errorf("embedder returned no vector for query")
	}

	documents, err := b.store.Query(ctx, collection, vectors[0], topK)
	if err != nil {
		if errors.Is(err, vectorDB.ErrCollectionNotFound) {
			log.Warn("query against missing collection", "collection", collection)
			return Result{Errors: []string{"Collection does not exist"}}, nil
		}
		return Result{}, fmt.Errorf("vector search: %w", err)
	}

	return Result{QueryText: queryText, Documents: documents}, nil
}
