package plan

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type echoProvider struct {
	err error
}

func (p *echoProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return prompt, p.err
}

func TestBuildPromptStructure(t *testing.T) {
	questions := []string{
		"Tell me about yourself",
		"Describe a conflict with a coworker",
	}
	prompt := BuildPrompt("backend engineer, 5 years, targeting fintech", questions)

	for _, category := range []string{
		"Recruiter Screening Questions",
		"Hiring Manager Questions",
		"Onsite Interview Questions",
		"Final Round Interview Questions",
	} {
		if !strings.Contains(prompt, category) {
			t.Errorf("prompt missing category %q", category)
		}
	}
	for _, question := range questions {
		if !strings.Contains(prompt, question) {
			t.Errorf("prompt missing retrieved question %q", question)
		}
	}
	if !strings.Contains(prompt, "Do NOT generate new questions") {
		t.Error("prompt must forbid inventing questions")
	}
	if !strings.Contains(prompt, "just leave it empty") {
		t.Error("prompt must allow empty categories")
	}
	if !strings.Contains(prompt, "backend engineer, 5 years") {
		t.Error("prompt missing candidate profile")
	}
}

func TestGeneratePassesPromptThrough(t *testing.T) {
	g := NewGenerator(&echoProvider{})
	out, err := g.Generate(context.Background(), "profile", []string{"a question"})
	if err != nil {
		t.Fatal(err)
	}
	if out != BuildPrompt("profile", []string{"a question"}) {
		t.Error("provider output should be returned verbatim")
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	g := NewGenerator(&echoProvider{err: errors.New("provider down")})
	if _, err := g.Generate(context.Background(), "profile", nil); err == nil {
		t.Error("expected provider error to propagate")
	}
}
