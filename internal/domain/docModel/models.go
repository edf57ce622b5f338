package docModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type DocType string

var PDF DocType = "PDF"
var XLSX DocType = "XLSX"
var DOCX DocType = "DOCX"
var ERR DocType = "ERROR"

// Table is one extracted table. For spreadsheets Sheet carries the sheet name,
// for PDFs it is empty. Rows keeps the raw cells including the header row,
// since period headers are only detected later during normalization.
type Table struct {
	Sheet string     `json:"sheet,omitempty"`
	Rows  [][]string `json:"rows"`
}

type Document struct {
	Id          string    `json:"source_doc_id"`
	Name        string    `json:"doc_name"`
	ExtractedAt time.Time `json:"extracted_at"`
	ContentType DocType   `json:"contentType"`
	Text        string    `json:"text"`
	Tables      []Table   `json:"tables"`
}

// PeriodValues maps a period heading ("2023", "FY2022", "Q1") to its value.
type PeriodValues map[string]decimal.Decimal

// MetricSet maps a detected row label ("revenue", "net income") to its values.
type MetricSet map[string]PeriodValues

// FinancialData maps statement section ("Income Statement", "Balance Sheet",
// "Cash Flow" or the fallback "Extracted") to its metrics.
// A metric is present or absent, nothing more.
type FinancialData map[string]MetricSet

// DocumentRecord is what survives in the session store after extraction.
// The raw text and tables are discarded once metrics are pulled out.
type DocumentRecord struct {
	Name        string        `json:"doc_name"`
	ContentType DocType       `json:"contentType"`
	ExtractedAt time.Time     `json:"extracted_at"`
	Financial   FinancialData `json:"financial"`
}
