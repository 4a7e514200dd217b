package adapter

import (
	"fmt"
	"time"

	"github.com/kaviapp/kavi/internal/api"
	"github.com/kaviapp/kavi/internal/domain/jobModel"
	"github.com/kaviapp/kavi/internal/rag"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:                 string(job.Status),
		IngestExternalResponse: ToIngestExternalStatus(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToIngestExternalStatus(payload jobModel.JobPayload) *api.IngestResponse {
	if payload.CorpusDir == "" && payload.Collection == "" {
		return nil
	}

	return &api.IngestResponse{
		CorpusDir:      payload.CorpusDir,
		Collection:     payload.Collection,
		ChunksIngested: payload.ChunksIngested,
	}
}

func ToPlanResponse(result rag.PlanResult) api.PlanResponse {
	return api.PlanResponse{
		Query:  result.Query,
		Plan:   result.Plan,
		Errors: result.Errors,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
