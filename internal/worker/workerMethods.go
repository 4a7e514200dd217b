package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/domain/jobModel"
	"github.com/kaviapp/kavi/internal/metrics"
)

func executeJob(job jobModel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 10*time.Minute)
	defer cancel()
	logger.Debug("Processing job", "jobId", job.Id, "traceId", job.TraceId)

	saveJobState(ctx, job, jobModel.JobStatusRunning)

	job = _ragService.ProcessIngestion(ctx, job)

	if job.EndTime.IsZero() {
		job.EndTime = time.Now()
	}
	saveJobState(ctx, job, job.Status)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

// retireIdleWorker frees one pool slot unless that would drop the pool
// below the minimum. The swap loop keeps concurrently expiring workers
// from retiring past it.
func retireIdleWorker() bool {
	for {
		count := atomic.LoadInt64(&currentWorkerCount)
		if count <= atomic.LoadInt64(&minWorkerCount) {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, count, count-1) {
			workerWaitGroup.Done()
			metrics.DecrementActiveWorkerCount()
			logger.Info("Removed worker", "reason", "Idle worker timeout", "workerCount", count-1)
			return true
		}
	}
}

func saveJobState(ctx context.Context, job jobModel.Job, jobStatus jobModel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
