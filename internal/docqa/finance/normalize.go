package finance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/nvasani/findocqa/internal/domain/docModel"
)

var periodRe = regexp.MustCompile(`20\d{2}|FY|Q[1-4]`)

// A statement section is detected when any of its text keywords appears in
// the document, then populated from table rows whose label carries one of its
// metric keywords.
type sectionDef struct {
	name           string
	matcher        *ahocorasick.Matcher
	metricKeywords []string
}

var sectionDefs = []sectionDef{
	{
		name:           "Income Statement",
		matcher:        ahocorasick.NewStringMatcher([]string{"income statement", "statement of operations", "profit and loss", "revenue"}),
		metricKeywords: []string{"revenue", "net income", "gross profit", "operating income", "total revenue", "profit"},
	},
	{
		name:           "Balance Sheet",
		matcher:        ahocorasick.NewStringMatcher([]string{"balance sheet", "assets", "liabilities", "equity"}),
		metricKeywords: []string{"total assets", "total liabilities", "shareholders' equity", "equity"},
	},
	{
		name:           "Cash Flow",
		matcher:        ahocorasick.NewStringMatcher([]string{"cash flow", "cash flows", "net cash", "cash and cash equivalents"}),
		metricKeywords: []string{"net cash provided", "net cash", "cash flows from operating", "cash and cash equivalents"},
	},
}

var fallbackKeywords = []string{"revenue", "net income", "total assets"}

// Normalize applies the keyword heuristics: detect which statement sections
// the document talks about, then pull the matching metric rows out of its
// tables. When no section keyword hits, a last pass over common metric names
// lands in the "Extracted" section.
func Normalize(text string, tables []docModel.Table) docModel.FinancialData {
	lower := strings.ToLower(text)
	result := docModel.FinancialData{}

	for _, def := range sectionDefs {
		if len(def.matcher.Match([]byte(lower))) == 0 {
			continue
		}
		if metrics := metricsFromTables(tables, def.metricKeywords); len(metrics) > 0 {
			result[def.name] = metrics
		}
	}

	if len(result) == 0 {
		if metrics := metricsFromTables(tables, fallbackKeywords); len(metrics) > 0 {
			result["Extracted"] = metrics
		}
	}

	return result
}

// metricsFromTables scans row labels for metric keywords. Period headings come
// from the first row when it looks like one (years / FY / quarters), otherwise
// columns are named positionally.
func metricsFromTables(tables []docModel.Table, metricKeywords []string) docModel.MetricSet {
	metrics := docModel.MetricSet{}

	for _, table := range tables {
		if len(table.Rows) == 0 {
			continue
		}
		header := table.Rows[0]

		for _, row := range table.Rows {
			if len(row) == 0 {
				continue
			}
			label := strings.ToLower(strings.TrimSpace(row[0]))
			if label == "" || !containsAny(label, metricKeywords) {
				continue
			}

			values := docModel.PeriodValues{}
			for col := 1; col < len(row); col++ {
				val, ok := CleanNumber(row[col])
				if !ok {
					continue
				}
				values[headingFor(header, col)] = val
			}
			if len(values) > 0 {
				metrics[label] = values
			}
		}
	}

	if len(metrics) == 0 {
		return nil
	}
	return metrics
}

func headingFor(header []string, col int) string {
	if col < len(header) {
		if h := strings.TrimSpace(header[col]); periodRe.MatchString(h) {
			return h
		}
	}
	return fmt.Sprintf("col%d", col)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
