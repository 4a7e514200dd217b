package rag_test

import (
	"context"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	OnCreateCollection func(ctx context.Context, name string) error
	OnInsert           func(ctx context.Context, name string, ids []string, vectors [][]float32, documents []string) error
	OnQuery            func(ctx context.Context, name string, vector []float32, topK int) ([]string, error)
}

func (m *MockVectorDB) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) Insert(ctx context.Context, name string, ids []string, vectors [][]float32, documents []string) error {
	if m.OnInsert != nil {
		return m.OnInsert(ctx, name, ids, vectors, documents)
	}
	return nil
}

func (m *MockVectorDB) Query(ctx context.Context, name string, vector []float32, topK int) ([]string, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, name, vector, topK)
	}
	return []string{"default question"}, nil
}

func (m *MockVectorDB) Close() error { return nil }

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i := range vectors {
		vectors[i] = []float32{0.1}
	}
	return vectors, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked llm response", nil
}
