package cvreader

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaviapp/kavi/internal/rag/llm"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var logger = logger_i.NewLogger("cvreader")

const (
	cvPrompt = "Summarize the following information."

	linkedinPrompt = "Summarize the following information with particular focus on the " +
		"headline, about, skills, certifications, recommendations, activity and " +
		"details of their latest job. If a particular data field does not exist " +
		"then just ignore it."
)

// Reader extracts candidate documents and condenses them into short
// summaries used later as retrieval queries.
type Reader struct {
	provider llm.Provider
}

func NewReader(provider llm.Provider) *Reader {
	return &Reader{provider: provider}
}

// SummarizeCV extracts the text of the CV at path and summarizes it.
func (r *Reader) SummarizeCV(ctx context.Context, path string) (string, error) {
	text, err := ExtractText(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document %q contains no extractable text", path)
	}

	summary, err := r.provider.Generate(ctx, cvPrompt+" "+text)
	if err != nil {
		return "", fmt.Errorf("summarize cv: %w", err)
	}
	return summary, nil
}

// SummarizeLinkedIn condenses an already scraped profile dump.
func (r *Reader) SummarizeLinkedIn(ctx context.Context, profileText string) (string, error) {
	if strings.TrimSpace(profileText) == "" {
		return "", fmt.Errorf("empty profile data")
	}
	summary, err := r.provider.Generate(ctx, linkedinPrompt+" "+profileText)
	if err != nil {
		return "", fmt.Errorf("summarize linkedin profile: %w", err)
	}
	return summary, nil
}
