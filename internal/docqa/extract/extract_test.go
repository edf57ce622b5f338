package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nvasani/findocqa/internal/domain/docModel"
)

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected docModel.DocType
	}{
		{"report.pdf", docModel.PDF},
		{"REPORT.PDF", docModel.PDF},
		{"balance.xlsx", docModel.XLSX},
		{"legacy.xls", docModel.XLSX},
		{"macro.xlsm", docModel.XLSX},
		{"filing.DOCX", docModel.DOCX},
		{"notes.txt", docModel.DOCX},
		{"image.png", docModel.ERR},
		{"noextension", docModel.ERR},
	}

	for _, tt := range tests {
		if got := GetDocType(tt.path); got != tt.expected {
			t.Errorf("GetDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestTablesFromText(t *testing.T) {
	t.Run("Statement block with period header", func(t *testing.T) {
		text := "Income Statement\n" +
			"2023 2022\n" +
			"Revenue 12,345 11,820\n" +
			"Net Income 1,234 (567)\n"

		tables := TablesFromText(text)
		if len(tables) != 1 {
			t.Fatalf("Expected 1 table, got %d", len(tables))
		}

		rows := tables[0].Rows
		if len(rows) != 3 {
			t.Fatalf("Expected header + 2 data rows, got %d", len(rows))
		}
		if rows[0][1] != "2023" || rows[0][2] != "2022" {
			t.Errorf("Header row mismatch: %v", rows[0])
		}
		if rows[1][0] != "Revenue" || rows[1][1] != "12,345" {
			t.Errorf("Data row mismatch: %v", rows[1])
		}
		if rows[2][0] != "Net Income" || rows[2][2] != "(567)" {
			t.Errorf("Parenthesized cell should survive as-is: %v", rows[2])
		}
	})

	t.Run("Single stray line is not a table", func(t *testing.T) {
		tables := TablesFromText("Revenue 12,345\n\nSome prose follows here.")
		if len(tables) != 0 {
			t.Errorf("Expected no tables from one stray line, got %d", len(tables))
		}
	})

	t.Run("Blank line splits tables", func(t *testing.T) {
		text := "Revenue 100 200\nCost 50 60\n\nTotal assets 900\nTotal liabilities 400\n"
		tables := TablesFromText(text)
		if len(tables) != 2 {
			t.Fatalf("Expected 2 tables, got %d", len(tables))
		}
	})

	t.Run("Prose only", func(t *testing.T) {
		if tables := TablesFromText("The company performed well this year."); len(tables) != 0 {
			t.Errorf("Expected no tables from prose, got %d", len(tables))
		}
	})
}

func TestRun_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filing.txt")
	content := "Income Statement\nRevenue 12,345 11,820\nNet Income 1,234 980\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Couldn't write fixture: %v", err)
	}

	doc, err := Run(path, "filing.txt")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if doc.ContentType != docModel.DOCX {
		t.Errorf("ContentType got %v, want %v", doc.ContentType, docModel.DOCX)
	}
	if doc.Text == "" {
		t.Error("Expected extracted text, got empty string")
	}
	if len(doc.Tables) != 1 {
		t.Errorf("Expected 1 table rebuilt from text, got %d", len(doc.Tables))
	}
}

func TestRun_UnsupportedType(t *testing.T) {
	if _, err := Run("whatever.png", "whatever.png"); err == nil {
		t.Error("Expected error for unsupported content type")
	}
}
