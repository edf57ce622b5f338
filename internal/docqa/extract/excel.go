package extract

import (
	"fmt"
	"strings"

	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/xuri/excelize/v2"
)

const previewRowCount = 20

// extractSpreadsheet reads every sheet of an XLSX/XLS workbook. Each sheet
// becomes one table; the text preview carries the first rows of each sheet so
// the statement-keyword scan has something to work on.
func extractSpreadsheet(path string) (string, []docModel.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		logger.Error("failed opening spreadsheet")
		return "", nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("Error closing spreadsheet", "error", err)
		}
	}()

	var textParts []string
	var tables []docModel.Table

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			logger.Error("Error reading sheet", "sheet", sheetName, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}

		textParts = append(textParts, sheetPreview(sheetName, rows))
		tables = append(tables, docModel.Table{Sheet: sheetName, Rows: rows})
	}

	return strings.Join(textParts, "\n\n"), tables, nil
}

func sheetPreview(sheetName string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("Sheet: " + sheetName + "\n")
	limit := previewRowCount
	if len(rows) < limit {
		limit = len(rows)
	}
	for _, row := range rows[:limit] {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}
