package vectorDB

import (
	"context"
	"errors"
)

var (
	ErrCollectionNotFound = errors.New("collection does not exist")
	ErrDuplicateID        = errors.New("duplicate point id")
	ErrDimensionMismatch  = errors.New("vector dimensionality mismatch")
)

// DataProcessor is the storage contract for embedded chunks. Both the
// embedded sqlite backend and the qdrant backend satisfy it.
type DataProcessor interface {
	CreateCollection(ctx context.Context, collectionName string) error
	Insert(ctx context.Context, collectionName string, ids []string, vectors [][]float32, documents []string) error
	Query(ctx context.Context, collectionName string, vector []float32, topK int) ([]string, error)
	Close() error
}
