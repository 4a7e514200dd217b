package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/kaviapp/kavi/internal/adapter"
	"github.com/kaviapp/kavi/internal/adapter/utils"
	"github.com/kaviapp/kavi/internal/api"
	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/domain/candidateModel"
	"github.com/kaviapp/kavi/internal/services/onboarding"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// PostCVHandler godoc
// @Summary      Upload and summarize a CV
// @Description  Receives a CV via multipart/form-data, extracts its text and returns an LLM summary. With session_id the summary is attached to the session.
// @Tags         Onboarding
// @Accept       multipart/form-data
// @Produce      json
// @Param        cv          formData  file    true   "The CV file (pdf, docx, odt, rtf or txt)"
// @Param        session_id  formData  string  false  "Candidate session to attach the summary to"
// @Success      200  {object}  api.CVResponse
// @Failure      400  {object}  api.JobResponse
// @Router       /cv [post]
func PostCVHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	tempFilePath, errString := saveUploadedFile(r, "cv")
	if errString != "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", errString)
		return
	}
	defer os.Remove(tempFilePath)

	summary, err := handlerInstance.reader.SummarizeCV(r.Context(), tempFilePath)
	if err != nil {
		logRH.Error("CV summarization failed", "error", err)
		WriteErrorResponse(w, http.StatusUnprocessableEntity, "", "Could not read CV")
		return
	}

	sessionId := r.FormValue("session_id")
	if sessionId != "" {
		if _, err := handlerInstance.flow.AttachDocumentSummary(r.Context(), sessionId, summary, ""); err != nil {
			logRH.Error("Failed to attach CV summary", "sessionId", sessionId, "error", err)
		}
	}

	writeJsonResponse(w, http.StatusOK, api.CVResponse{CVData: summary, SessionID: sessionId})
}

// PostLinkedInHandler godoc
// @Summary      Summarize LinkedIn profile data
// @Description  Accepts pre-scraped LinkedIn profile text and returns an LLM summary focused on the candidate's professional details.
// @Tags         Onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      api.LinkedInRequest  true  "Scraped profile text and optional session id"
// @Success      200      {object}  api.LinkedInResponse
// @Failure      400      {object}  api.JobResponse
// @Router       /linkedin [post]
func PostLinkedInHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	var requestData api.LinkedInRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.ProfileData == "" {
		logRH.Warn("Bad LinkedIn Request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "profile_data is required")
		return
	}

	summary, err := handlerInstance.reader.SummarizeLinkedIn(r.Context(), requestData.ProfileData)
	if err != nil {
		logRH.Error("LinkedIn summarization failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not summarize profile")
		return
	}

	if requestData.SessionID != "" {
		if _, err := handlerInstance.flow.AttachDocumentSummary(r.Context(), requestData.SessionID, "", summary); err != nil {
			logRH.Error("Failed to attach LinkedIn summary", "sessionId", requestData.SessionID, "error", err)
		}
	}

	writeJsonResponse(w, http.StatusOK, api.LinkedInResponse{LinkedInData: summary, SessionID: requestData.SessionID})
}

// ChatbotAskHandler godoc
// @Summary      Get the chatbot message for an onboarding step
// @Description  Generates the scripted question for the given step (welcome, current-work, reason-interview, interview-process, target-company).
// @Tags         Chatbot
// @Accept       json
// @Produce      json
// @Param        step     path      string                 true  "Onboarding step"
// @Param        request  body      api.ChatbotAskRequest  false "Optional conversation context"
// @Success      200      {object}  api.ChatbotResponse
// @Failure      404      {object}  api.JobResponse
// @Router       /chatbot/{step} [post]
func ChatbotAskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	step := utils.GetChiURLParam(r, "step")

	var requestData api.ChatbotAskRequest
	defer closeBody(r.Body)
	// an empty body is fine for steps without context
	_ = json.NewDecoder(r.Body).Decode(&requestData)

	message, err := handlerInstance.flow.Ask(r.Context(), step, requestData.Data)
	if err != nil {
		if errors.Is(err, onboarding.ErrUnknownStep) {
			WriteErrorResponse(w, http.StatusNotFound, step, "Unknown onboarding step")
			return
		}
		logRH.Error("Chatbot step failed", "step", step, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, step, "Could not generate message")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.ChatbotResponse{Message: message})
}

// ChatbotAnswerHandler godoc
// @Summary      Record the user's answer for an onboarding step
// @Description  Stores the answer on the candidate session; sessions are created on first use.
// @Tags         Chatbot
// @Accept       json
// @Produce      json
// @Param        step     path      string                    true  "Onboarding step"
// @Param        request  body      api.ChatbotAnswerRequest  true  "Session id and the answer"
// @Success      200      {object}  candidateModel.Session
// @Failure      400      {object}  api.JobResponse
// @Router       /chatbot/{step} [put]
func ChatbotAnswerHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	step := utils.GetChiURLParam(r, "step")

	var requestData api.ChatbotAnswerRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.SessionID == "" {
		WriteErrorResponse(w, http.StatusBadRequest, step, "session_id and answer are required")
		return
	}

	session, err := handlerInstance.flow.RecordAnswer(r.Context(), requestData.SessionID, step, requestData.Answer)
	if err != nil {
		switch {
		case errors.Is(err, onboarding.ErrUnknownStep):
			WriteErrorResponse(w, http.StatusNotFound, step, "Unknown onboarding step")
		case errors.Is(err, onboarding.ErrAnswerTooShort):
			WriteErrorResponse(w, http.StatusBadRequest, step, "Answer must be at least 3 characters")
		default:
			logRH.Error("Recording answer failed", "step", step, "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, step, "Could not record answer")
		}
		return
	}

	writeJsonResponse(w, http.StatusOK, session)
}

// SessionSummaryHandler godoc
// @Summary      Summarize a candidate session
// @Description  Condenses everything the session has collected (CV and LinkedIn summaries, chatbot answers) into the candidate summary and persists it on the session.
// @Tags         Onboarding
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  candidateModel.Session
// @Failure      404  {object}  api.JobResponse
// @Router       /session/{id}/summary [post]
func SessionSummaryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	sessionId := utils.GetChiURLParam(r, "id")
	session, err := handlerInstance.flow.SummarizeSession(r.Context(), sessionId)
	if err != nil {
		if errors.Is(err, onboarding.ErrSessionNotFound) {
			WriteErrorResponse(w, http.StatusNotFound, sessionId, "Session not found")
			return
		}
		logRH.Error("Session summarization failed", "sessionId", sessionId, "error", err)
		WriteErrorResponse(w, http.StatusUnprocessableEntity, sessionId, "Could not summarize session")
		return
	}

	writeJsonResponse(w, http.StatusOK, session)
}

// OnboardingHandler godoc
// @Summary      Generate the onboarding summary
// @Description  Condenses the full onboarding payload into the one-paragraph candidate summary used as the plan query.
// @Tags         Onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      candidateModel.OnboardingPayload  true  "Candidate profile and interview goals"
// @Success      200      {object}  api.OnboardingResponse
// @Failure      400      {object}  api.JobResponse
// @Router       /onboarding/process [post]
func OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	var payload candidateModel.OnboardingPayload
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}

	summary, err := handlerInstance.flow.Summarize(r.Context(), payload)
	if err != nil {
		logRH.Error("Onboarding summarization failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not generate summary")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.OnboardingResponse{OnboardingSummary: summary})
}

// PlanHandler godoc
// @Summary      Build the interview preparation plan
// @Description  Retrieves the closest corpus questions for the candidate summary and organizes them into a categorized plan. A corpus that was never ingested yields an error field instead of a plan.
// @Tags         Plan
// @Accept       json
// @Produce      json
// @Param        request  body      api.PlanRequest  true  "Candidate summary and optional result count"
// @Success      200      {object}  api.PlanResponse
// @Failure      400      {object}  api.JobResponse
// @Router       /plan [post]
func PlanHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	var requestData api.PlanRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.UserSummary) == "" {
		logRH.Warn("Bad Plan Request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "user_summary is required")
		return
	}

	result, err := handlerInstance.ragService.BuildPlan(r.Context(), requestData.UserSummary, requestData.NumberOfResult)
	if err != nil {
		logRH.Error("Plan generation failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not build plan")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToPlanResponse(result))
}

// PostIngestHandler godoc
// @Summary      Queue a corpus ingestion job
// @Description  Queues a background job that loads the question corpus, chunks it, embeds it and stores it in the vector store. Returns a job id to track status.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.IngestRequest    false  "Corpus directory and collection overrides"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	var requestData api.IngestRequest
	defer closeBody(r.Body)
	// defaults apply when the body is empty
	_ = json.NewDecoder(r.Body).Decode(&requestData)

	newJob := newJobData{
		id:         utils.GetNewUUID(),
		traceId:    r.Context().Value(config.TRACE_ID_KEY).(string),
		corpusDir:  requestData.CorpusDir,
		collection: requestData.Collection,
	}
	CreateNewJob(newJob)

	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request body", "error", err)
	}
}
