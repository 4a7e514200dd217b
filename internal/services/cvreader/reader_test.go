package cvreader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
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

func TestSummarizeCVFromTxt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(path, []byte("Software developer with Go experience"), 0o644); err != nil {
		t.Fatal(err)
	}

	provider := &stubProvider{response: "a concise summary"}
	r := NewReader(provider)

	summary, err := r.SummarizeCV(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if summary != "a concise summary" {
		t.Errorf("summary got %q", summary)
	}
	if !strings.Contains(provider.gotPrompt, "Software developer with Go experience") {
		t.Error("extracted text missing from prompt")
	}
	if !strings.HasPrefix(provider.gotPrompt, "Summarize the following information.") {
		t.Errorf("unexpected prompt prefix: %q", provider.gotPrompt)
	}
}

func TestSummarizeCVUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.png")
	if err := os.WriteFile(path, []byte{0x89, 0x50}, 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&stubProvider{})
	_, err := r.SummarizeCV(context.Background(), path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSummarizeCVEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&stubProvider{})
	if _, err := r.SummarizeCV(context.Background(), path); err == nil {
		t.Error("expected an error for a document with no text")
	}
}

func TestSummarizeLinkedIn(t *testing.T) {
	provider := &stubProvider{response: "profile summary"}
	r := NewReader(provider)

	summary, err := r.SummarizeLinkedIn(context.Background(), "headline: Go engineer")
	if err != nil {
		t.Fatal(err)
	}
	if summary != "profile summary" {
		t.Errorf("summary got %q", summary)
	}
	if !strings.Contains(provider.gotPrompt, "headline: Go engineer") {
		t.Error("profile data missing from prompt")
	}
}

func TestSummarizeLinkedInEmptyInput(t *testing.T) {
	r := NewReader(&stubProvider{})
	if _, err := r.SummarizeLinkedIn(context.Background(), "  "); err == nil {
		t.Error("expected an error for empty profile data")
	}
}

func TestSummarizeCVProviderFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(path, []byte("some cv content"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&stubProvider{err: errors.New("provider down")})
	if _, err := r.SummarizeCV(context.Background(), path); err == nil {
		t.Error("expected provider error to propagate")
	}
}
