package candidateModel

import (
	"context"
	"time"
)

type CandidateProfile struct {
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	CurrentPosition string   `json:"current_position"`
	CurrentCompany  string   `json:"current_company"`
	StartDate       string   `json:"start_date"`
	CompanySize     string   `json:"company_size"`
	Education       string   `json:"education"`
	Skills          []string `json:"skills"`
	Certifications  []string `json:"certifications"`
	LinkedInURL     string   `json:"linkedin_url"`
}

type InterviewGoals struct {
	CareerStage     string `json:"career_stage"`
	InterviewReason string `json:"interview_reason"`
	InterviewStage  string `json:"interview_stage"`
	TargetCompany   string `json:"target_company"`
	SearchScope     string `json:"search_scope"`
}

type OnboardingPayload struct {
	CandidateProfile CandidateProfile `json:"candidate_profile"`
	InterviewGoals   InterviewGoals   `json:"interview_goals"`
}

// Session accumulates everything we learn about a candidate during
// onboarding: document summaries, scripted-step answers and the final
// onboarding summary used as the plan query.
type Session struct {
	Id              string            `json:"id"`
	CVSummary       string            `json:"cv_summary,omitempty"`
	LinkedInSummary string            `json:"linkedin_summary,omitempty"`
	Answers         map[string]string `json:"answers,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	CreatedTime     time.Time         `json:"created_time"`
	UpdatedTime     time.Time         `json:"updated_time"`
}

type SessionStore interface {
	GetSession(ctx context.Context, sessionId string) (Session, bool)
	SaveSession(ctx context.Context, session Session) error
	DeleteSession(ctx context.Context, sessionId string)
}
