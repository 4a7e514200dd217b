package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaviapp/kavi/internal/rag/llm"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var log = logger_i.NewLogger("planGenerator")

// Generator turns a candidate summary plus retrieved questions into a
// structured preparation plan via the llm provider.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// BuildPrompt constrains the model to the retrieved questions: it may
// select and order them but never invent new ones.
func BuildPrompt(candidateProfile string, questions []string) string {
	var b strings.Builder
	b.WriteString("You are an expert interview coach creating a personalized interview preparation plan for a candidate.\n\n")
	b.WriteString("Candidate profile:\n")
	b.WriteString(candidateProfile)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Below is a list of %d relevant interview questions retrieved from a curated database. ", len(questions))
	b.WriteString("You must only work with these exact questions. Do NOT generate new questions.\n\n")
	for _, question := range questions {
		b.WriteString("- ")
		b.WriteString(question)
		b.WriteString("\n")
	}
	b.WriteString("\nYour task:\n")
	b.WriteString("Select the most appropriate questions from the above list (only if suitable), and organize them into the following categories:\n")
	b.WriteString("1. Recruiter Screening Questions\n")
	b.WriteString("2. Hiring Manager Questions\n")
	b.WriteString("3. Onsite Interview Questions\n")
	b.WriteString("4. Final Round Interview Questions\n\n")
	b.WriteString("For each category, list up to 5 questions with a one-line coaching tip on how the candidate should approach it. ")
	b.WriteString("If you cannot find good matches for a category, just leave it empty.\n\n")
	b.WriteString("Do not create new questions or hallucinate content.\n")
	return b.String()
}

// Generate returns the model output verbatim. Parsing the plan into
// sections is left to clients.
func (g *Generator) Generate(ctx context.Context, candidateProfile string, questions []string) (string, error) {
	prompt := BuildPrompt(candidateProfile, questions)
	response, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate plan: %w", err)
	}
	log.Debug("plan generated", "questions", len(questions), "responseLength", len(response))
	return response, nil
}
