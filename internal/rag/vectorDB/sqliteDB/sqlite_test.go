package sqliteDB

import (
	"context"
	"errors"
	"testing"

	"github.com/kaviapp/kavi/internal/rag/vectorDB"
)

// fakeEmbedding gives every string a deterministic vector so nearest
// neighbour results are predictable without a real embedding service.
func fakeEmbedding(text string) []float32 {
	vector := make([]float32, 8)
	for i, r := range text {
		vector[i%8] += float32(r)
	}
	return vector
}

func newTestStore(t *testing.T) *VectorStore {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedCollection(t *testing.T, store *VectorStore, collection string, docs []string) {
	t.Helper()
	ctx := context.Background()
	if err := store.CreateCollection(ctx, collection); err != nil {
		t.Fatal(err)
	}
	ids := make([]string, len(docs))
	vectors := make([][]float32, len(docs))
	for i, doc := range docs {
		ids[i] = string(rune('0' + i))
		vectors[i] = fakeEmbedding(doc)
	}
	if err := store.Insert(ctx, collection, ids, vectors, docs); err != nil {
		t.Fatal(err)
	}
}

func TestQuerySelfRetrieval(t *testing.T) {
	store := newTestStore(t)
	docs := []string{
		"Tell me about yourself",
		"Why do you want to work here",
		"Describe a conflict with a coworker",
	}
	seedCollection(t, store, "questions", docs)

	results, err := store.Query(context.Background(), "questions", fakeEmbedding(docs[1]), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 || results[0] != docs[1] {
		t.Errorf("expected %q ranked first, got %v", docs[1], results)
	}
}

func TestQueryTopKBound(t *testing.T) {
	store := newTestStore(t)
	docs := []string{"a question", "another question"}
	seedCollection(t, store, "questions", docs)

	results, err := store.Query(context.Background(), "questions", fakeEmbedding("a question"), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("topK beyond collection size should return all points, got %d", len(results))
	}
}

func TestQueryNegativeTopK(t *testing.T) {
	store := newTestStore(t)
	seedCollection(t, store, "questions", []string{"a question", "another question"})

	results, err := store.Query(context.Background(), "questions", fakeEmbedding("a question"), -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("negative topK should return no results, got %v", results)
	}
}

func TestQueryEmptyCollection(t *testing.T) {
	store := newTestStore(t)
	if err := store.CreateCollection(context.Background(), "empty"); err != nil {
		t.Fatal(err)
	}
	results, err := store.Query(context.Background(), "empty", fakeEmbedding("anything"), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestQueryMissingCollection(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Query(context.Background(), "never-created", fakeEmbedding("anything"), 5)
	if !errors.Is(err, vectorDB.ErrCollectionNotFound) {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestInsertMissingCollection(t *testing.T) {
	store := newTestStore(t)
	err := store.Insert(context.Background(), "never-created",
		[]string{"0"}, [][]float32{fakeEmbedding("q")}, []string{"q"})
	if !errors.Is(err, vectorDB.ErrCollectionNotFound) {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestInsertDuplicateID(t *testing.T) {
	store := newTestStore(t)
	seedCollection(t, store, "questions", []string{"first question"})

	err := store.Insert(context.Background(), "questions",
		[]string{"0"}, [][]float32{fakeEmbedding("other")}, []string{"other"})
	if !errors.Is(err, vectorDB.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestInsertDimensionMismatch(t *testing.T) {
	store := newTestStore(t)
	seedCollection(t, store, "questions", []string{"first question"})

	err := store.Insert(context.Background(), "questions",
		[]string{"9"}, [][]float32{{1, 2, 3}}, []string{"short vector"})
	if !errors.Is(err, vectorDB.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCreateCollectionIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.CreateCollection(ctx, "questions"); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateCollection(ctx, "questions"); err != nil {
		t.Errorf("recreating an existing collection should be a no-op, got %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	seedCollection(t, store, "questions", []string{"a persisted question"})
	store.Close()

	reopened, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	results, err := reopened.Query(context.Background(), "questions", fakeEmbedding("a persisted question"), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0] != "a persisted question" {
		t.Errorf("data did not survive reopen: %v", results)
	}
}
