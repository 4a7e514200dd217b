package qdrantDB

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/rag/vectorDB"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var log = logger_i.NewLogger("qdrantDB")

// VectorStore is the server backend, for deployments where the vector
// data outgrows a single embedded file.
type VectorStore struct {
	client    *qdrant.Client
	dimension uint64
}

func New() (*VectorStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     config.QdrantHost,
		Port:     config.QdrantGrpcPort,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: config.QdrantPoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to qdrant: %w", err)
	}
	log.Info("qdrant client ready", "host", config.QdrantHost)
	return &VectorStore{
		client:    client,
		dimension: uint64(config.EmbeddingOutputDimensionality),
	}, nil
}

func (s *VectorStore) Close() error {
	return s.client.Close()
}

func (s *VectorStore) CreateCollection(ctx context.Context, collectionName string) error {
	exists, err := s.client.CollectionExists(ctx, collectionName)
	if err != nil {
		return fmt.Errorf("check collection %q: %w", collectionName, err)
	}
	if exists {
		return nil
	}
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection %q: %w", collectionName, err)
	}
	return nil
}

func (s *VectorStore) Insert(ctx context.Context, collectionName string, ids []string, vectors [][]float32, documents []string) error {
	if len(ids) != len(vectors) || len(ids) != len(documents) {
		return fmt.Errorf("ids, vectors and documents must align: %d/%d/%d", len(ids), len(vectors), len(documents))
	}
	if len(ids) == 0 {
		return nil
	}

	exists, err := s.client.CollectionExists(ctx, collectionName)
	if err != nil {
		return fmt.Errorf("check collection %q: %w", collectionName, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", vectorDB.ErrCollectionNotFound, collectionName)
	}

	pointIds := make([]*qdrant.PointId, len(ids))
	for i, id := range ids {
		ordinal, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return fmt.Errorf("point id %q is not numeric: %w", id, err)
		}
		pointIds[i] = qdrant.NewIDNum(ordinal)
	}

	existing, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: collectionName,
		Ids:            pointIds,
	})
	if err != nil {
		return fmt.Errorf("duplicate check in %q: %w", collectionName, err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: %d of the ids already stored in %q",
			vectorDB.ErrDuplicateID, len(existing), collectionName)
	}

	points := make([]*qdrant.PointStruct, len(ids))
	for i := range ids {
		if uint64(len(vectors[i])) != s.dimension {
			return fmt.Errorf("%w: collection %q expects %d, point %q has %d",
				vectorDB.ErrDimensionMismatch, collectionName, s.dimension, ids[i], len(vectors[i]))
		}
		points[i] = &qdrant.PointStruct{
			Id:      pointIds[i],
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{"content": documents[i]}),
		}
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upsert into %q: %w", collectionName, err)
	}
	return nil
}

func (s *VectorStore) Query(ctx context.Context, collectionName string, vector []float32, topK int) ([]string, error) {
	exists, err := s.client.CollectionExists(ctx, collectionName)
	if err != nil {
		return nil, fmt.Errorf("check collection %q: %w", collectionName, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", vectorDB.ErrCollectionNotFound, collectionName)
	}

	if topK < 0 {
		topK = 0
	}
	hits, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", collectionName, err)
	}

	results := make([]string, 0, len(hits))
	for _, hit := range hits {
		if value, ok := hit.Payload["content"]; ok {
			results = append(results, value.GetStringValue())
		}
	}
	return results, nil
}
