package job

import (
	"github.com/kaviapp/kavi/internal/domain/jobModel"
)

// Service carries the queue plumbing shared by the handlers and the
// worker pool.
type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
	}
}
