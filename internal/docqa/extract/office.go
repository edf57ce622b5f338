package extract

import (
	"fmt"

	"github.com/lu4p/cat"
	"github.com/nvasani/findocqa/internal/domain/docModel"
)

// extractOfficeText reads a .docx, .odt, .rtf or plaintext filing. Tables are
// reconstructed from the text since these formats lose cell structure here.
func extractOfficeText(path string) (string, []docModel.Table, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc")
		return "", nil, fmt.Errorf("failed to extract document text: %w", err)
	}

	return text, TablesFromText(text), nil
}
