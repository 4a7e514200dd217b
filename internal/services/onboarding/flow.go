package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kaviapp/kavi/internal/domain/candidateModel"
	"github.com/kaviapp/kavi/internal/rag/llm"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var logger = logger_i.NewLogger("onboarding")

var (
	ErrUnknownStep     = errors.New("unknown onboarding step")
	ErrAnswerTooShort  = errors.New("answer too short")
	ErrSessionNotFound = errors.New("session not found")
)

const (
	StepWelcome          = "welcome"
	StepCurrentWork      = "current-work"
	StepReasonInterview  = "reason-interview"
	StepInterviewProcess = "interview-process"
	StepTargetCompany    = "target-company"
)

var stepPrompts = map[string]string{
	StepWelcome:          welcomePrompt,
	StepCurrentWork:      currentWorkPrompt,
	StepReasonInterview:  reasonForInterviewPrompt,
	StepInterviewProcess: interviewProcessPrompt,
	StepTargetCompany:    targetCompanyPrompt,
}

// Flow drives the scripted onboarding conversation. Every step asks
// one question; the answers land in the candidate session and feed the
// final summary.
type Flow struct {
	provider llm.Provider
	sessions candidateModel.SessionStore
}

func NewFlow(provider llm.Provider, sessions candidateModel.SessionStore) *Flow {
	return &Flow{provider: provider, sessions: sessions}
}

// Ask generates the chatbot message for a step. The welcome step
// ignores any conversation data.
func (f *Flow) Ask(ctx context.Context, step string, data string) (string, error) {
	prompt, ok := stepPrompts[step]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	if step == StepWelcome {
		data = ""
	}

	message, err := f.provider.Generate(ctx, strings.TrimSpace(prompt+" "+data))
	if err != nil {
		return "", fmt.Errorf("generate step message: %w", err)
	}
	return message, nil
}

// RecordAnswer stores the user's reply for a step on the session,
// creating the session on first use.
func (f *Flow) RecordAnswer(ctx context.Context, sessionId string, step string, answer string) (candidateModel.Session, error) {
	if _, ok := stepPrompts[step]; !ok || step == StepWelcome {
		return candidateModel.Session{}, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	if len(strings.TrimSpace(answer)) < 3 {
		return candidateModel.Session{}, ErrAnswerTooShort
	}

	session, found := f.sessions.GetSession(ctx, sessionId)
	if !found {
		session = candidateModel.Session{
			Id:          sessionId,
			CreatedTime: time.Now(),
		}
	}
	if session.Answers == nil {
		session.Answers = make(map[string]string)
	}
	session.Answers[step] = answer
	session.UpdatedTime = time.Now()

	if err := f.sessions.SaveSession(ctx, session); err != nil {
		return candidateModel.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// AttachDocumentSummary stores a CV or LinkedIn summary on the session.
func (f *Flow) AttachDocumentSummary(ctx context.Context, sessionId string, cvSummary string, linkedInSummary string) (candidateModel.Session, error) {
	session, found := f.sessions.GetSession(ctx, sessionId)
	if !found {
		session = candidateModel.Session{
			Id:          sessionId,
			CreatedTime: time.Now(),
		}
	}
	if cvSummary != "" {
		session.CVSummary = cvSummary
	}
	if linkedInSummary != "" {
		session.LinkedInSummary = linkedInSummary
	}
	session.UpdatedTime = time.Now()

	if err := f.sessions.SaveSession(ctx, session); err != nil {
		return candidateModel.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Summarize condenses a full onboarding payload into the one-paragraph
// candidate summary used as the plan query.
func (f *Flow) Summarize(ctx context.Context, payload candidateModel.OnboardingPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal onboarding payload: %w", err)
	}

	summary, err := f.provider.Generate(ctx, onboardingSummaryPrompt+" "+string(data))
	if err != nil {
		return "", fmt.Errorf("generate onboarding summary: %w", err)
	}
	return summary, nil
}

// SummarizeSession builds the summary from whatever the session has
// collected and persists it on the session.
func (f *Flow) SummarizeSession(ctx context.Context, sessionId string) (candidateModel.Session, error) {
	session, found := f.sessions.GetSession(ctx, sessionId)
	if !found {
		return candidateModel.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionId)
	}

	var b strings.Builder
	if session.CVSummary != "" {
		b.WriteString("CV summary: " + session.CVSummary + "\n")
	}
	if session.LinkedInSummary != "" {
		b.WriteString("LinkedIn summary: " + session.LinkedInSummary + "\n")
	}
	for step, answer := range session.Answers {
		b.WriteString(step + ": " + answer + "\n")
	}
	if b.Len() == 0 {
		return candidateModel.Session{}, fmt.Errorf("session %s has no data to summarize", sessionId)
	}

	summary, err := f.provider.Generate(ctx, onboardingSummaryPrompt+" "+b.String())
	if err != nil {
		return candidateModel.Session{}, fmt.Errorf("generate session summary: %w", err)
	}

	session.Summary = summary
	session.UpdatedTime = time.Now()
	if err := f.sessions.SaveSession(ctx, session); err != nil {
		return candidateModel.Session{}, fmt.Errorf("save session: %w", err)
	}
	logger.Debug("session summarized", "sessionId", sessionId)
	return session, nil
}
