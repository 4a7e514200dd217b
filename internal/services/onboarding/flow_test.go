package onboarding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kaviapp/kavi/internal/domain/candidateModel"
)

type stubProvider struct {
	gotPrompt string
	response  string
	err       error
}

func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	return s.response, s.err
}

type memorySessions struct {
	sessions map[string]candidateModel.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]candidateModel.Session)}
}

func (m *memorySessions) GetSession(ctx context.Context, id string) (candidateModel.Session, bool) {
	s, ok := m.sessions[id]
	return s, ok
}

func (m *memorySessions) SaveSession(ctx context.Context, s candidateModel.Session) error {
	m.sessions[s.Id] = s
	return nil
}

func (m *memorySessions) DeleteSession(ctx context.Context, id string) {
	delete(m.sessions, id)
}

func TestAskKnownSteps(t *testing.T) {
	provider := &stubProvider{response: "step message"}
	f := NewFlow(provider, newMemorySessions())

	for _, step := range []string{StepWelcome, StepCurrentWork, StepReasonInterview, StepInterviewProcess, StepTargetCompany} {
		message, err := f.Ask(context.Background(), step, "some context")
		if err != nil {
			t.Errorf("step %s: %v", step, err)
		}
		if message != "step message" {
			t.Errorf("step %s: message got %q", step, message)
		}
	}
}

func TestAskWelcomeIgnoresData(t *testing.T) {
	provider := &stubProvider{response: "welcome"}
	f := NewFlow(provider, newMemorySessions())

	if _, err := f.Ask(context.Background(), StepWelcome, "should be dropped"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(provider.gotPrompt, "should be dropped") {
		t.Error("welcome step must not carry conversation data")
	}
}

func TestAskUnknownStep(t *testing.T) {
	f := NewFlow(&stubProvider{}, newMemorySessions())
	if _, err := f.Ask(context.Background(), "favorite-color", ""); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("expected ErrUnknownStep, got %v", err)
	}
}

func TestRecordAnswerAccumulates(t *testing.T) {
	store := newMemorySessions()
	f := NewFlow(&stubProvider{}, store)
	ctx := context.Background()

	if _, err := f.RecordAnswer(ctx, "s1", StepCurrentWork, "Go developer at a fintech"); err != nil {
		t.Fatal(err)
	}
	session, err := f.RecordAnswer(ctx, "s1", StepTargetCompany, "Google")
	if err != nil {
		t.Fatal(err)
	}
	if len(session.Answers) != 2 {
		t.Errorf("expected 2 answers, got %v", session.Answers)
	}
	if session.Answers[StepCurrentWork] != "Go developer at a fintech" {
		t.Error("earlier answer lost")
	}
}

func TestRecordAnswerValidation(t *testing.T) {
	f := NewFlow(&stubProvider{}, newMemorySessions())
	ctx := context.Background()

	if _, err := f.RecordAnswer(ctx, "s1", StepCurrentWork, " a "); !errors.Is(err, ErrAnswerTooShort) {
		t.Errorf("expected ErrAnswerTooShort, got %v", err)
	}
	if _, err := f.RecordAnswer(ctx, "s1", StepWelcome, "an answer"); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("welcome takes no answer, got %v", err)
	}
	if _, err := f.RecordAnswer(ctx, "s1", "no-such-step", "an answer"); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("expected ErrUnknownStep, got %v", err)
	}
}

func TestSummarizePayload(t *testing.T) {
	provider := &stubProvider{response: "candidate paragraph"}
	f := NewFlow(provider, newMemorySessions())

	payload := candidateModel.OnboardingPayload{
		CandidateProfile: candidateModel.CandidateProfile{
			Name:            "Sam",
			CurrentPosition: "Software Developer",
			Skills:          []string{"Go", "SQL"},
		},
		InterviewGoals: candidateModel.InterviewGoals{
			TargetCompany: "Google",
		},
	}

	summary, err := f.Summarize(context.Background(), payload)
	if err != nil {
		t.Fatal(err)
	}
	if summary != "candidate paragraph" {
		t.Errorf("summary got %q", summary)
	}
	for _, want := range []string{"Software Developer", "Google", "Go"} {
		if !strings.Contains(provider.gotPrompt, want) {
			t.Errorf("prompt missing payload field %q", want)
		}
	}
}

func TestSummarizeSession(t *testing.T) {
	store := newMemorySessions()
	provider := &stubProvider{response: "full summary"}
	f := NewFlow(provider, store)
	ctx := context.Background()

	if _, err := f.AttachDocumentSummary(ctx, "s1", "worked on Go services", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.RecordAnswer(ctx, "s1", StepTargetCompany, "Google"); err != nil {
		t.Fatal(err)
	}

	session, err := f.SummarizeSession(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if session.Summary != "full summary" {
		t.Errorf("Summary got %q", session.Summary)
	}
	if stored := store.sessions["s1"]; stored.Summary != "full summary" {
		t.Error("summary not persisted on the session")
	}
	if !strings.Contains(provider.gotPrompt, "worked on Go services") {
		t.Error("prompt missing CV summary")
	}
}

func TestSummarizeSessionMissing(t *testing.T) {
	f := NewFlow(&stubProvider{}, newMemorySessions())
	if _, err := f.SummarizeSession(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
