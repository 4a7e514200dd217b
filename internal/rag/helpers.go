package rag

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/domain/jobModel"
	"github.com/kaviapp/kavi/internal/rag/corpus"
	"github.com/kaviapp/kavi/internal/rag/vectorDB"
)

// ProcessIngestion is the worker entry point. It fills in payload
// defaults, runs the ingestion and records the outcome on the job.
// Duration metrics are the worker's concern; it labels them with the
// final job status.
func (s *service) ProcessIngestion(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.With("traceId", job.TraceId, "jobId", job.Id)

	job.CurrentStep = jobModel.IngestInit

	dir := job.JobPayload.CorpusDir
	if dir == "" {
		dir = config.CorpusDir
	}
	collection := job.JobPayload.Collection
	if collection == "" {
		collection = config.QuestionCollectionName
	}
	job.JobPayload.CorpusDir = dir
	job.JobPayload.Collection = collection

	job.CurrentStep = jobModel.IngestProcessing
	log.Debug("ProcessIngestion", "currentStep", job.CurrentStep)

	report, err := s.IngestCorpus(ctx, dir, collection)
	if err != nil {
		return s.jobError(job, err)
	}

	job.JobPayload.ChunksIngested = report.Chunks
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	job.EndTime = time.Now()
	log.Info("ingestion complete", "chunks", report.Chunks)
	return job
}

func (s *service) jobError(job jobModel.Job, err error) jobModel.Job {
	s.logger.Error("INGESTION_FAILURE", "jobId", job.Id, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry(err),
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	job.EndTime = time.Now()
	return job
}

// Duplicate ids, a missing corpus and malformed files will fail the
// same way on every attempt, only transient failures are retryable.
func canRetry(err error) bool {
	switch {
	case errors.Is(err, vectorDB.ErrDuplicateID),
		errors.Is(err, vectorDB.ErrDimensionMismatch),
		errors.Is(err, corpus.ErrCorpusUnavailable),
		errors.Is(err, corpus.ErrCorpusParse),
		errors.Is(err, ErrIngestInProgress):
		return false
	}
	return true
}
