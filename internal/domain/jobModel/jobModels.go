package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	IngestProcessing InternalStatus = "IngestProcessing"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	VectorDBCall     InternalStatus = "VectorDB"
	Error            InternalStatus = "Error"
	Complete         InternalStatus = "Complete"
)

// Job tracks one asynchronous corpus-ingestion run.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	CorpusDir      string `json:"corpus_dir,omitempty"`
	Collection     string `json:"collection,omitempty"`
	ChunksIngested int    `json:"chunks_ingested,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
