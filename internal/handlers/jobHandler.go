package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/domain/candidateModel"
	"github.com/kaviapp/kavi/internal/domain/jobModel"
	"github.com/kaviapp/kavi/internal/job"
	"github.com/kaviapp/kavi/internal/metrics"
	"github.com/kaviapp/kavi/internal/rag"
	"github.com/kaviapp/kavi/internal/services/cvreader"
	"github.com/kaviapp/kavi/internal/services/onboarding"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service      *job.Service
	ragService   rag.Service
	reader       *cvreader.Reader
	flow         *onboarding.Flow
	sessionStore candidateModel.SessionStore
}

type HandlerConfig struct {
	JobService   *job.Service
	RagService   rag.Service
	Reader       *cvreader.Reader
	Flow         *onboarding.Flow
	SessionStore candidateModel.SessionStore
}

func InitJobHandler(cfg HandlerConfig) {
	once.Do(func() {
		handlerInstance = &JobHandler{
			service:      cfg.JobService,
			ragService:   cfg.RagService,
			reader:       cfg.Reader,
			flow:         cfg.Flow,
			sessionStore: cfg.SessionStore,
		}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

type newJobData struct {
	id         string
	traceId    string
	corpusDir  string
	collection string
}

func CreateNewJob(newJob newJobData) {
	logJH.Info("To create new job", "traceId", newJob.traceId, "jobId", newJob.id)
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {
	_job := jobModel.Job{
		Id:          newJob.id,
		TraceId:     newJob.traceId,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.IngestInit,
		JobPayload: jobModel.JobPayload{
			CorpusDir:  newJob.corpusDir,
			Collection: newJob.collection,
		},
	}

	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	// ingestion batches against external services can take a while, so
	// every queued ingestion also signals for a worker; idle workers
	// retire on their own
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	metrics.StartDispatcherSignalCount()
	logJH.Debug("Request count", "count", accurateCount)
	h.service.DispatcherChannel <- true
}
