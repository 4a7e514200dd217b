package rag_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/domain/jobModel"
	"github.com/kaviapp/kavi/internal/rag"
	"github.com/kaviapp/kavi/internal/rag/corpus"
	"github.com/kaviapp/kavi/internal/rag/plan"
	"github.com/kaviapp/kavi/internal/rag/vectorDB"
)

func newService(em *MockEmbedder, vec *MockVectorDB, llm *MockLLM) rag.Service {
	loader := corpus.NewLoader(config.ChunkSize, config.ChunkOverlap)
	return rag.NewService(loader, em, vec, plan.NewGenerator(llm))
}

func writeCorpus(t *testing.T, rows ...string) string {
	t.Helper()
	dir := t.TempDir()
	content := "question,category\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "questions.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestIngestCorpus_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(e *MockEmbedder, v *MockVectorDB)
		expectedErr error
	}{
		{
			name:       "Ingestion_Success",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {},
		},
		{
			name: "Failure_Collection_Creation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnCreateCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
			expectedErr: errors.New("connection refused"),
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				e.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedErr: errors.New("api limit"),
		},
		{
			name: "Failure_Duplicate_Ids",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnInsert = func(ctx context.Context, name string, ids []string, vectors [][]float32, documents []string) error {
					return fmt.Errorf("%w: 0", vectorDB.ErrDuplicateID)
				}
			},
			expectedErr: vectorDB.ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			tt.setupMocks(mEmbed, mVec)

			s := newService(mEmbed, mVec, &MockLLM{})
			dir := writeCorpus(t, "Tell me about yourself,Screening", "Why this company,Manager")

			report, err := s.IngestCorpus(context.Background(), dir, "questions")
			if tt.expectedErr != nil {
				if err == nil || !strings.Contains(err.Error(), tt.expectedErr.Error()) {
					t.Errorf("expected error containing %q, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if report.Chunks != 2 {
				t.Errorf("expected 2 chunks ingested, got %d", report.Chunks)
			}
		})
	}
}

func TestIngestCorpusSequentialIds(t *testing.T) {
	var gotIds []string
	mVec := &MockVectorDB{
		OnInsert: func(ctx context.Context, name string, ids []string, vectors [][]float32, documents []string) error {
			gotIds = append(gotIds, ids...)
			return nil
		},
	}

	s := newService(&MockEmbedder{}, mVec, &MockLLM{})
	dir := writeCorpus(t, "first,one", "second,two", "third,three")

	if _, err := s.IngestCorpus(context.Background(), dir, "questions"); err != nil {
		t.Fatal(err)
	}
	want := []string{"0", "1", "2"}
	if len(gotIds) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIds)
	}
	for i := range want {
		if gotIds[i] != want[i] {
			t.Errorf("id %d: expected %q, got %q", i, want[i], gotIds[i])
		}
	}
}

func TestIngestCorpusSingleFlight(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	mEmbed := &MockEmbedder{
		OnBatchEmbedding: func(ctx context.Context, chunks []string) ([][]float32, error) {
			close(started)
			<-block
			return make([][]float32, len(chunks)), nil
		},
	}

	s := newService(mEmbed, &MockVectorDB{}, &MockLLM{})
	dir := writeCorpus(t, "a question,cat")

	done := make(chan error, 1)
	go func() {
		_, err := s.IngestCorpus(context.Background(), dir, "questions")
		done <- err
	}()

	<-started
	_, err := s.IngestCorpus(context.Background(), dir, "questions")
	if !errors.Is(err, rag.ErrIngestInProgress) {
		t.Errorf("expected ErrIngestInProgress for concurrent ingest, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Errorf("first ingestion should succeed, got %v", err)
	}
}

func TestProcessIngestion_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB)
		corpusExists   bool
		expectedStatus jobModel.JobStatus
		expectedRetry  bool
	}{
		{
			name:           "Success",
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB) {},
			corpusExists:   true,
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name:           "Missing_Corpus_Not_Retryable",
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB) {},
			corpusExists:   false,
			expectedStatus: jobModel.JobStatusError,
			expectedRetry:  false,
		},
		{
			name: "Transient_Store_Failure_Retryable",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnInsert = func(ctx context.Context, name string, ids []string, vectors [][]float32, documents []string) error {
					return errors.New("db timeout")
				}
			},
			corpusExists:   true,
			expectedStatus: jobModel.JobStatusError,
			expectedRetry:  true,
		},
		{
			name: "Duplicate_Not_Retryable",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnInsert = func(ctx context.Context, name string, ids []string, vectors [][]float32, documents []string) error {
					return fmt.Errorf("%w: 0", vectorDB.ErrDuplicateID)
				}
			},
			corpusExists:   true,
			expectedStatus: jobModel.JobStatusError,
			expectedRetry:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			tt.setupMocks(mEmbed, mVec)

			s := newService(mEmbed, mVec, &MockLLM{})

			dir := filepath.Join(t.TempDir(), "missing")
			if tt.corpusExists {
				dir = writeCorpus(t, "a question,cat")
			}

			job := jobModel.Job{
				Id:         "ingest-job-1",
				TraceId:    "test-trace",
				JobPayload: jobModel.JobPayload{CorpusDir: dir, Collection: "questions"},
			}

			result := s.ProcessIngestion(context.Background(), job)
			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if result.Status == jobModel.JobStatusError && result.Error.Retry != tt.expectedRetry {
				t.Errorf("Retry got %v, want %v", result.Error.Retry, tt.expectedRetry)
			}
			if result.Status == jobModel.JobStatusComplete && result.JobPayload.ChunksIngested != 1 {
				t.Errorf("ChunksIngested got %d, want 1", result.JobPayload.ChunksIngested)
			}
		})
	}
}

// completedJobSampleCount reads how many job durations landed in the
// COMPLETE bucket of the shared prometheus registry.
func completedJobSampleCount(t *testing.T) uint64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, family := range families {
		if family.GetName() != "process_request_duration_seconds" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" && label.GetValue() == string(jobModel.JobStatusComplete) {
					return metric.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestProcessIngestionFailureNotCountedAsComplete(t *testing.T) {
	s := newService(&MockEmbedder{}, &MockVectorDB{}, &MockLLM{})

	before := completedJobSampleCount(t)

	job := jobModel.Job{
		Id:      "ingest-metrics-1",
		TraceId: "test-trace",
		JobPayload: jobModel.JobPayload{
			CorpusDir:  filepath.Join(t.TempDir(), "missing"),
			Collection: "questions",
		},
	}
	result := s.ProcessIngestion(context.Background(), job)
	if result.Status != jobModel.JobStatusError {
		t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
	}

	after := completedJobSampleCount(t)
	if after != before {
		t.Errorf("failed ingestion recorded under status %q (count %d -> %d)",
			jobModel.JobStatusComplete, before, after)
	}
}

func TestBuildPlan_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedPlan string
		expectedErrs []string
		expectErr    bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnQuery = func(ctx context.Context, name string, vector []float32, topK int) ([]string, error) {
					return []string{"Tell me about yourself", "Why this company"}, nil
				}
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					if !strings.Contains(prompt, "Tell me about yourself") {
						return "", errors.New("retrieved questions missing from prompt")
					}
					return "final plan", nil
				}
			},
			expectedPlan: "final plan",
		},
		{
			name: "Missing_Collection_Soft_Failure",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnQuery = func(ctx context.Context, name string, vector []float32, topK int) ([]string, error) {
					return nil, vectorDB.ErrCollectionNotFound
				}
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("llm must not be called without a collection")
				}
			},
			expectedErrs: []string{"Collection does not exist"},
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectErr: true,
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}
			tt.setupMocks(mEmbed, mVec, mLLM)

			s := newService(mEmbed, mVec, mLLM)

			result, err := s.BuildPlan(context.Background(), "candidate summary", 10)
			if tt.expectErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.expectedPlan != "" && result.Plan != tt.expectedPlan {
				t.Errorf("Plan got %q, want %q", result.Plan, tt.expectedPlan)
			}
			if len(tt.expectedErrs) > 0 {
				if len(result.Errors) != len(tt.expectedErrs) || result.Errors[0] != tt.expectedErrs[0] {
					t.Errorf("Errors got %v, want %v", result.Errors, tt.expectedErrs)
				}
				if result.Plan != "" {
					t.Errorf("no plan expected on soft failure, got %q", result.Plan)
				}
			}
		})
	}
}

func TestSearchQuestionsQueryText(t *testing.T) {
	var gotQuery string
	mEmbed := &MockEmbedder{
		OnBatchEmbedding: func(ctx context.Context, chunks []string) ([][]float32, error) {
			gotQuery = chunks[0]
			return [][]float32{{0.1}}, nil
		},
	}

	s := newService(mEmbed, &MockVectorDB{}, &MockLLM{})

	result, err := s.SearchQuestions(context.Background(), "candidate X", 5, "questions")
	if err != nil {
		t.Fatal(err)
	}
	want := config.DefaultQueryPrefix + "candidate X"
	if gotQuery != want {
		t.Errorf("embedded query got %q, want %q", gotQuery, want)
	}
	if result.QueryText != want {
		t.Errorf("QueryText got %q, want %q", result.QueryText, want)
	}
}
