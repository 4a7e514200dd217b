package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type IngestResponse struct {
	CorpusDir      string `json:"corpus_dir"`
	Collection     string `json:"collection"`
	ChunksIngested int    `json:"chunks_ingested"`
}

type Result struct {
	Status                 string          `json:"status"`
	IngestExternalResponse *IngestResponse `json:"ingest_response,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type CVResponse struct {
	CVData    string `json:"cv_data"`
	SessionID string `json:"session_id,omitempty"`
}

type LinkedInResponse struct {
	LinkedInData string `json:"linkedin_data"`
	SessionID    string `json:"session_id,omitempty"`
}

type ChatbotResponse struct {
	Message string `json:"message"`
}

type OnboardingResponse struct {
	OnboardingSummary string `json:"onboarding_summary"`
}

type PlanResponse struct {
	Query  string   `json:"query,omitempty"`
	Plan   string   `json:"plan,omitempty"`
	Errors []string `json:"error,omitempty"`
}

// requests---------------------

type LinkedInRequest struct {
	ProfileURL  string `json:"profile_url,omitempty"`
	ProfileData string `json:"profile_data" validate:"required"`
	SessionID   string `json:"session_id,omitempty"`
}

type ChatbotAskRequest struct {
	Data string `json:"data,omitempty"`
}

type ChatbotAnswerRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Answer    string `json:"answer" validate:"required"`
}

type PlanRequest struct {
	UserSummary    string `json:"user_summary" validate:"required"`
	NumberOfResult int    `json:"number_of_result,omitempty"`
}

type IngestRequest struct {
	CorpusDir  string `json:"corpus_dir,omitempty"`
	Collection string `json:"collection,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
