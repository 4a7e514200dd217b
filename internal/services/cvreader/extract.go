package cvreader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractText pulls the plain text out of a CV file. PDFs are read
// page by page, office formats go through cat.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx", ".odt", ".rtf", ".txt":
		return extractDocxTxtRtf(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var fullText strings.Builder
	numPages := f.NumPage()
	logger.Debug("extractPDF", "pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// keep going with the remaining pages
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		fullText.WriteString(content)
		fullText.WriteString("\n")
	}
	return fullText.String(), nil
}

func extractDocxTxtRtf(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "error", err)
		return "", fmt.Errorf("failed to extract document: %w", err)
	}
	return text, nil
}

// a malformed pdf can hang GetPlainText, so each page gets a deadline
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("page extraction timeout")
	}
}
