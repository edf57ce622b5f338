package rules

import (
	"strings"
	"testing"

	"github.com/nvasani/findocqa/internal/docqa/finance"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/shopspring/decimal"
)

func fixtureRecords() map[string]docModel.DocumentRecord {
	return map[string]docModel.DocumentRecord{
		"report.pdf": {
			Name: "report.pdf",
			Financial: docModel.FinancialData{
				"Income Statement": docModel.MetricSet{
					"revenue": docModel.PeriodValues{
						"2023": decimal.NewFromInt(12345),
						"2022": decimal.NewFromInt(11820),
					},
					"net income": docModel.PeriodValues{
						"2023": decimal.NewFromInt(1234),
					},
				},
			},
		},
	}
}

func TestEvaluate_ConfidenceLadder(t *testing.T) {
	tests := []struct {
		name               string
		question           string
		records            map[string]docModel.DocumentRecord
		expectedConfidence float64
		expectedContains   string
	}{
		{
			name:               "Metric with exact year",
			question:           "What was the revenue in 2022?",
			records:            fixtureRecords(),
			expectedConfidence: 0.9,
			expectedContains:   "11820",
		},
		{
			name:               "Metric with latest period",
			question:           "What is the latest revenue?",
			records:            fixtureRecords(),
			expectedConfidence: 0.8,
			expectedContains:   "2023",
		},
		{
			name:               "Last year phrasing counts as latest",
			question:           "How much revenue did we make last year?",
			records:            fixtureRecords(),
			expectedConfidence: 0.8,
			expectedContains:   "12345",
		},
		{
			name:               "Metric without period",
			question:           "Tell me about net income",
			records:            fixtureRecords(),
			expectedConfidence: 0.7,
			expectedContains:   "1234",
		},
		{
			name:               "Metric with small typo",
			question:           "what was the revenu in 2023",
			records:            fixtureRecords(),
			expectedConfidence: 0.9,
			expectedContains:   "12345",
		},
		{
			name:               "Unknown metric falls back to loose numbers",
			question:           "what about depreciation",
			records:            fixtureRecords(),
			expectedConfidence: 0.4,
			expectedContains:   "Examples",
		},
		{
			name:               "Nothing extracted",
			question:           "what was the revenue",
			records:            map[string]docModel.DocumentRecord{},
			expectedConfidence: 0.0,
			expectedContains:   "couldn't find",
		},
		{
			name:     "Year without data falls back to any period",
			question: "what was the revenue in 2019?",
			records:  fixtureRecords(),
			// no value for 2019; the periods we do have still answer
			expectedConfidence: 0.7,
			expectedContains:   "12345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := Evaluate(tt.question, tt.records)

			if answer.Confidence != tt.expectedConfidence {
				t.Errorf("Confidence got %v, want %v (answer: %s)",
					answer.Confidence, tt.expectedConfidence, answer.Text)
			}
			if tt.expectedContains != "" && !strings.Contains(answer.Text, tt.expectedContains) {
				t.Errorf("Answer %q should contain %q", answer.Text, tt.expectedContains)
			}
		})
	}
}

func TestEvaluate_DocumentScope(t *testing.T) {
	records := fixtureRecords()
	records["other.pdf"] = docModel.DocumentRecord{
		Name: "other.pdf",
		Financial: docModel.FinancialData{
			"Income Statement": docModel.MetricSet{
				"revenue": docModel.PeriodValues{"2023": decimal.NewFromInt(999)},
			},
		},
	}

	answer := Evaluate("revenue in 2023", finance.ScopeRecords(records, "other.pdf"))
	if !strings.Contains(answer.Text, "999") {
		t.Errorf("Scoped answer should come from other.pdf, got %q", answer.Text)
	}
}

func TestMatchMetric(t *testing.T) {
	tests := []struct {
		question string
		expected string
	}{
		{"what is the revenue", "revenue"},
		{"total assets please", "total assets"},
		{"net incme 2023", "net income"}, // dropped letter
		{"what is the weather", ""},
		{"cash position", "cash"},
	}

	for _, tt := range tests {
		if got := matchMetric(tt.question); got != tt.expected {
			t.Errorf("matchMetric(%q) = %q; want %q", tt.question, got, tt.expected)
		}
	}
}
