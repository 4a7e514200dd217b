package sqliteDB

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/kaviapp/kavi/internal/rag/vectorDB"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var log = logger_i.NewLogger("sqliteDB")

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	name      TEXT PRIMARY KEY,
	dimension INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	doc_id     TEXT NOT NULL,
	embedding  BLOB NOT NULL,
	content    TEXT NOT NULL,
	PRIMARY KEY (collection, doc_id)
);
`

// VectorStore is the embedded backend. Vectors live in a single sqlite
// file and similarity search runs in process, so no external service is
// needed for local use.
type VectorStore struct {
	db *sql.DB
}

// New opens (and if needed creates) the database file under dataDir.
// An empty dataDir falls back to ~/.kavi/data.
func New(dataDir string) (*VectorStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kavi", "data")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open vector database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	log.Info("embedded vector store ready", "path", dbPath)
	return &VectorStore{db: db}, nil
}

func (s *VectorStore) Close() error {
	return s.db.Close()
}

// CreateCollection registers the collection if it is not already
// present. The dimensionality is pinned by the first insert.
func (s *VectorStore) CreateCollection(ctx context.Context, collectionName string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, collectionName)
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	var dimension int
	err = tx.QueryRowContext(ctx, `SELECT dimension FROM collections WHERE name = ?`, collectionName).Scan(&dimension)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", vectorDB.ErrCollectionNotFound, collectionName)
	}
	if err != nil {
		return fmt.Errorf("read collection %q: %w", collectionName, err)
	}

	if dimension == 0 {
		dimension = len(vectors[0])
		if _, err := tx.ExecContext(ctx,
			`UPDATE collections SET dimension = ? WHERE name = ?`, dimension, collectionName); err != nil {
			return fmt.Errorf("pin dimension for %q: %w", collectionName, err)
		}
	}

	for i, vector := range vectors {
		if len(vector) != dimension {
			return fmt.Errorf("%w: collection %q expects %d, point %q has %d",
				vectorDB.ErrDimensionMismatch, collectionName, dimension, ids[i], len(vector))
		}
	}

	for _, id := range ids {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM documents WHERE collection = ? AND doc_id = ?)`,
			collectionName, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("duplicate check for %q: %w", id, err)
		}
		if exists {
			return fmt.Errorf("%w: %s in collection %q", vectorDB.ErrDuplicateID, id, collectionName)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (collection, doc_id, embedding, content) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, collectionName, id, encodeVector(vectors[i]), documents[i]); err != nil {
			return fmt.Errorf("insert point %q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// Query returns the contents of the topK nearest points by cosine
// similarity. Fewer than topK points in the collection just means a
// shorter result.
func (s *VectorStore) Query(ctx context.Context, collectionName string, vector []float32, topK int) ([]string, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM collections WHERE name = ?)`, collectionName).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("read collection %q: %w", collectionName, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", vectorDB.ErrCollectionNotFound, collectionName)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT embedding, content FROM documents WHERE collection = ?`, collectionName)
	if err != nil {
		return nil, fmt.Errorf("scan collection %q: %w", collectionName, err)
	}
	defer rows.Close()

	type scored struct {
		content string
		score   float64
	}
	var candidates []scored
	for rows.Next() {
		var blob []byte
		var content string
		if err := rows.Scan(&blob, &content); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		candidates = append(candidates, scored{
			content: content,
			score:   cosineSimilarity(vector, decodeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan collection %q: %w", collectionName, err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if topK < 0 {
		topK = 0
	}
	if topK > len(candidates) {
		topK = len(candidates)
	}

	results := make([]string, 0, topK)
	for _, candidate := range candidates[:topK] {
		results = append(results, candidate.content)
	}
	return results, nil
}

func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) []float32 {
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector
}

func cosineSimilarity(a []float32, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
