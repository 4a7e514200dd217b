package query

import (
	"context"
	"errors"
	"testing"

	"github.com/kaviapp/kavi/internal/rag/vectorDB"
)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return []float32{0.1}, s.err
}

func (s *stubEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return [][]float32{{0.1}}, nil
}

type stubStore struct {
	documents []string
	err       error
	gotTopK   int
}

func (s *stubStore) CreateCollection(ctx context.Context, name string) error { return nil }

func (s *stubStore) Insert(ctx context.Context, name string, ids []string, vectors [][]float32, documents []string) error {
	return nil
}

func (s *stubStore) Query(ctx context.Context, name string, vector []float32, topK int) ([]string, error) {
	s.gotTopK = topK
	return s.documents, s.err
}

func (s *stubStore) Close() error { return nil }

func TestMakeQueryConcatenation(t *testing.T) {
	store := &stubStore{documents: []string{"q1", "q2"}}
	b := NewBuilder(&stubEmbedder{}, store)

	result, err := b.MakeQuery(context.Background(), "prefix ", "candidate X", 5, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if result.QueryText != "prefix candidate X" {
		t.Errorf("QueryText got %q, want plain concatenation", result.QueryText)
	}
	if store.gotTopK != 5 {
		t.Errorf("topK got %d, want 5", store.gotTopK)
	}
	if len(result.Documents) != 2 {
		t.Errorf("Documents got %v", result.Documents)
	}
	if result.Failed() {
		t.Error("successful query must not report errors")
	}
}

func TestMakeQueryMissingCollection(t *testing.T) {
	store := &stubStore{err: vectorDB.ErrCollectionNotFound}
	b := NewBuilder(&stubEmbedder{}, store)

	result, err := b.MakeQuery(context.Background(), "prefix ", "candidate X", 5, "demo")
	if err != nil {
		t.Fatalf("missing collection must be a soft failure, got %v", err)
	}
	if !result.Failed() {
		t.Fatal("expected Result.Failed()")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Collection does not exist" {
		t.Errorf("Errors got %v", result.Errors)
	}
	if result.QueryText != "" || len(result.Documents) != 0 {
		t.Errorf("soft failure should carry no query payload: %+v", result)
	}
}

func TestMakeQueryStoreFailure(t *testing.T) {
	store := &stubStore{err: errors.New("grpc unavailable")}
	b := NewBuilder(&stubEmbedder{}, store)

	if _, err := b.MakeQuery(context.Background(), "prefix ", "candidate X", 5, "demo"); err == nil {
		t.Error("hard store failures must propagate")
	}
}

func TestMakeQueryEmbedderFailure(t *testing.T) {
	b := NewBuilder(&stubEmbedder{err: errors.New("api limit")}, &stubStore{})

	if _, err := b.MakeQuery(context.Background(), "prefix ", "candidate X", 5, "demo"); err == nil {
		t.Error("embedding failures must propagate")
	}
}
