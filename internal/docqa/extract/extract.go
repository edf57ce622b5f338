package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

var logger *logger_i.Logger

func init() {
	logger = logger_i.NewLogger("Document Extraction")
}

func GetDocType(docPath string) docModel.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return docModel.PDF
	case ".xlsx", ".xls", ".xlsm":
		return docModel.XLSX
	case ".docx", ".txt", ".rtf", ".odt":
		return docModel.DOCX
	default:
		return docModel.ERR
	}
}

// Run extracts the full text and any recognizable tables from the file at
// path. It never retries: a broken filing is reported back to the caller,
// not reprocessed.
func Run(path string, name string) (docModel.Document, error) {
	doc := docModel.Document{
		Name:        name,
		ExtractedAt: time.Now(),
		ContentType: GetDocType(path),
	}

	logger.Debug("Processing document", "filename", name, "type", doc.ContentType)

	var err error
	switch doc.ContentType {
	case docModel.PDF:
		doc.Text, doc.Tables, err = extractPDF(path)
	case docModel.XLSX:
		doc.Text, doc.Tables, err = extractSpreadsheet(path)
	case docModel.DOCX:
		doc.Text, doc.Tables, err = extractOfficeText(path)
	default:
		err = fmt.Errorf("unsupported content type: %s", filepath.Ext(path))
	}

	if err != nil {
		return doc, err
	}
	logger.Debug("Extraction done", "filename", name, "tables", len(doc.Tables))
	return doc, nil
}
