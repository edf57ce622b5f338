package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/domain/docModel"
)

func extractPDF(path string) (string, []docModel.Table, error) {
	logger.Debug("extractPDF", "attempting extraction", path)
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file")
		return "", nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var textParts []string
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			logger.Debug("extractPDF", "page value is null", i)
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// keep going with the other pages
			logger.Error("Error parsing page content", "page", i, "Error", err)
			continue
		}
		textParts = append(textParts, content)
	}

	fullText := strings.Join(textParts, "\n")
	return fullText, TablesFromText(fullText), nil
}

// the pdf library can hang on malformed content streams
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
	case <-time.After(config.PageExtractTimeout):
		logger.Error("pageExtract", "timeout", true)
		return "", errors.New("timeout")
	}
}
