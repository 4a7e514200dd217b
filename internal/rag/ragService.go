package rag

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/domain/jobModel"
	"github.com/kaviapp/kavi/internal/metrics"
	"github.com/kaviapp/kavi/internal/rag/corpus"
	"github.com/kaviapp/kavi/internal/rag/embedding"
	"github.com/kaviapp/kavi/internal/rag/plan"
	"github.com/kaviapp/kavi/internal/rag/query"
	"github.com/kaviapp/kavi/internal/rag/vectorDB"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var ErrIngestInProgress = errors.New("corpus ingestion already running")

// Service is the public contract of the retrieval pipeline. The worker
// and the handlers call this, they never touch the embedder or the
// vector store directly.
type Service interface {
	ProcessIngestion(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestCorpus(ctx context.Context, dir string, collection string) (IngestReport, error)
	SearchQuestions(ctx context.Context, summary string, topK int, collection string) (query.Result, error)
	BuildPlan(ctx context.Context, summary string, topK int) (PlanResult, error)
}

type IngestReport struct {
	Collection string `json:"collection"`
	Chunks     int    `json:"chunks"`
}

// PlanResult mirrors the soft-failure contract of the query layer: a
// missing collection fills Errors and leaves Plan empty.
type PlanResult struct {
	Query  string   `json:"query,omitempty"`
	Plan   string   `json:"plan,omitempty"`
	Errors []string `json:"error,omitempty"`
}

type service struct {
	loader        *corpus.Loader
	embedder      embedding.Embedder
	vectorDB      vectorDB.DataProcessor
	queryBuilder  *query.Builder
	planGenerator *plan.Generator
	ingesting     atomic.Bool
	logger        *logger_i.Logger
}

func NewService(loader *corpus.Loader, em embedding.Embedder, vector vectorDB.DataProcessor, provider *plan.Generator) Service {
	return &service{
		loader:        loader,
		embedder:      em,
		vectorDB:      vector,
		queryBuilder:  query.NewBuilder(em, vector),
		planGenerator: provider,
		logger:        logger_i.NewLogger("ragService"),
	}
}

// IngestCorpus loads, chunks, embeds and stores the question corpus.
// Only one ingestion runs at a time; ids are the chunk ordinals, so
// re-ingesting an already populated collection fails on the first
// duplicate instead of silently doubling the data.
func (s *service) IngestCorpus(ctx context.Context, dir string, collection string) (IngestReport, error) {
	if !s.ingesting.CompareAndSwap(false, true) {
		return IngestReport{}, ErrIngestInProgress
	}
	defer s.ingesting.Store(false)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("corpus_ingestion", time.Since(start)) }()

	loadStart := time.Now()
	chunks, err := s.loader.Load(dir)
	metrics.CaptureExecutionMetrics("corpus_load", time.Since(loadStart))
	if err != nil {
		return IngestReport{}, err
	}

	if err := s.vectorDB.CreateCollection(ctx, collection); err != nil {
		return IngestReport{}, err
	}

	for batchStart := 0; batchStart < len(chunks); batchStart += config.IngestBatchSize {
		batchEnd := batchStart + config.IngestBatchSize
		if batchEnd > len(chunks) {
			batchEnd = len(chunks)
		}
		batch := chunks[batchStart:batchEnd]

		embedStart := time.Now()
		vectors, err := s.embedder.BatchEmbedding(ctx, batch)
		metrics.CaptureExecutionMetrics("embedding", time.Since(embedStart))
		if err != nil {
			return IngestReport{}, fmt.Errorf("embed batch at chunk %d: %w", batchStart, err)
		}
		if len(vectors) != len(batch) {
			return IngestReport{}, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}

		ids := make([]string, len(batch))
		for i := range batch {
			ids[i] = strconv.Itoa(batchStart + i)
		}

		insertStart := time.Now()
		err = s.vectorDB.Insert(ctx, collection, ids, vectors, batch)
		metrics.CaptureExecutionMetrics("vector_insert", time.Since(insertStart))
		if err != nil {
			return IngestReport{}, err
		}
	}

	s.logger.Info("corpus ingested", "collection", collection, "chunks", len(chunks))
	return IngestReport{Collection: collection, Chunks: len(chunks)}, nil
}

// SearchQuestions retrieves the topK corpus chunks closest to the
// candidate summary. Missing collections surface in Result.Errors.
func (s *service) SearchQuestions(ctx context.Context, summary string, topK int, collection string) (query.Result, error) {
	if topK <= 0 {
		topK = config.DefaultTopK
	}
	if collection == "" {
		collection = config.QuestionCollectionName
	}

	searchStart := time.Now()
	result, err := s.queryBuilder.MakeQuery(ctx, config.DefaultQueryPrefix, summary, topK, collection)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(searchStart))
	return result, err
}

// BuildPlan runs retrieval and hands the matches to the llm. When the
// collection was never ingested the plan step is skipped and the soft
// error is passed through.
func (s *service) BuildPlan(ctx context.Context, summary string, topK int) (PlanResult, error) {
	result, err := s.SearchQuestions(ctx, summary, topK, config.QuestionCollectionName)
	if err != nil {
		return PlanResult{}, err
	}
	if result.Failed() {
		return PlanResult{Errors: result.Errors}, nil
	}

	llmStart := time.Now()
	planText, err := s.planGenerator.Generate(ctx, result.QueryText, result.Documents)
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(llmStart))
	if err != nil {
		return PlanResult{}, err
	}

	return PlanResult{Query: result.QueryText, Plan: planText}, nil
}
