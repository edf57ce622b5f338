package docqa_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/docqa"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
	"github.com/shopspring/decimal"
)

func extractedRecords() map[string]docModel.DocumentRecord {
	return map[string]docModel.DocumentRecord{
		"report.pdf": {
			Name: "report.pdf",
			Financial: docModel.FinancialData{
				"Income Statement": docModel.MetricSet{
					"revenue": docModel.PeriodValues{
						"2023": decimal.NewFromInt(12345),
					},
				},
			},
		},
	}
}

func TestProcessQuestion_Scenarios(t *testing.T) {
	tests := []struct {
		name            string
		question        string
		setupMocks      func(s *MockSessionStore, p *MockProvider)
		withProvider    bool
		expectedStatus  jobModel.JobStatus
		expectedSource  string
		expectedAnswer  string
		expectModelCall bool
		expectedErr     bool
	}{
		{
			name:     "Confident_Rule_Answer_Skips_Model",
			question: "What was the revenue in 2023?",
			setupMocks: func(s *MockSessionStore, p *MockProvider) {
				s.OnGetDocuments = func(ctx context.Context, id string) (map[string]docModel.DocumentRecord, error) {
					return extractedRecords(), nil
				}
			},
			withProvider:    true,
			expectedSource:  "rules",
			expectedAnswer:  "revenue for 2023 is 12345",
			expectModelCall: false,
		},
		{
			name:     "Low_Confidence_Falls_Back_To_Model",
			question: "Summarize the outlook",
			setupMocks: func(s *MockSessionStore, p *MockProvider) {
				s.OnGetDocuments = func(ctx context.Context, id string) (map[string]docModel.DocumentRecord, error) {
					return extractedRecords(), nil
				}
				p.OnGenerate = func(ctx context.Context, q string, dc string, h []string) (string, error) {
					return "the outlook is stable", nil
				}
			},
			withProvider:    true,
			expectedSource:  "mock-model",
			expectedAnswer:  "the outlook is stable",
			expectModelCall: true,
		},
		{
			name:     "Model_Failure_Keeps_Rule_Answer",
			question: "Summarize the outlook",
			setupMocks: func(s *MockSessionStore, p *MockProvider) {
				s.OnGetDocuments = func(ctx context.Context, id string) (map[string]docModel.DocumentRecord, error) {
					return extractedRecords(), nil
				}
				p.OnGenerate = func(ctx context.Context, q string, dc string, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			withProvider:    true,
			expectedSource:  "rules",
			expectModelCall: true,
		},
		{
			name:     "No_Provider_Stays_Rules_Only",
			question: "Summarize the outlook",
			setupMocks: func(s *MockSessionStore, p *MockProvider) {
				s.OnGetDocuments = func(ctx context.Context, id string) (map[string]docModel.DocumentRecord, error) {
					return extractedRecords(), nil
				}
			},
			withProvider:   false,
			expectedSource: "rules",
		},
		{
			name:     "Failure_Session_Lookup",
			question: "What was the revenue?",
			setupMocks: func(s *MockSessionStore, p *MockProvider) {
				s.OnGetDocuments = func(ctx context.Context, id string) (map[string]docModel.DocumentRecord, error) {
					return nil, errors.New("redis timeout")
				}
			},
			withProvider:   true,
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &MockSessionStore{}
			provider := &MockProvider{}
			tt.setupMocks(sessions, provider)

			var s docqa.Service
			if tt.withProvider {
				s = docqa.NewService(sessions, provider)
			} else {
				s = docqa.NewService(sessions, nil)
			}

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			job := jobModel.Job{
				Id:        "test-job",
				SessionId: "test-session",
				JobPayload: jobModel.JobPayload{
					Question: tt.question,
					Document: "all",
				},
			}

			result := s.ProcessQuestion(ctx, job, []string{})

			if tt.expectedStatus != "" && result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectedErr {
				if result.Error.Code != http.StatusInternalServerError {
					t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusInternalServerError)
				}
				return
			}
			if tt.expectedSource != "" && result.JobPayload.Source != tt.expectedSource {
				t.Errorf("Source got %s, want %s", result.JobPayload.Source, tt.expectedSource)
			}
			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %q, want %q", result.JobPayload.Answer, tt.expectedAnswer)
			}
			if tt.expectModelCall && provider.GenerateCalls == 0 {
				t.Error("Expected the model provider to be called")
			}
			if !tt.expectModelCall && provider.GenerateCalls > 0 {
				t.Error("Model provider should not be called for confident rule answers")
			}
		})
	}
}

func TestExtractDocument_Scenarios(t *testing.T) {
	newJob := func(path string, name string) jobModel.Job {
		return jobModel.Job{
			Id:        "extract-job-1",
			SessionId: "test-session",
			JobPayload: jobModel.JobPayload{
				ExtractFileName: name,
				ExtractPath:     path,
			},
		}
	}
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "extract-trace")

	t.Run("Extraction_Success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "filing.txt")
		content := "Income Statement\nRevenue 12,345 11,820\nNet Income 1,234 980\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Couldn't write fixture: %v", err)
		}

		sessions := &MockSessionStore{}
		s := docqa.NewService(sessions, nil)

		result := s.ExtractDocument(ctx, newJob(path, "filing.txt"))

		if result.Status != jobModel.JobStatusComplete {
			t.Fatalf("Status got %v, want %v (error: %+v)", result.Status, jobModel.JobStatusComplete, result.Error)
		}
		if len(sessions.SavedRecords) != 1 {
			t.Fatalf("Expected 1 saved record, got %d", len(sessions.SavedRecords))
		}
		if sessions.SavedRecords[0].Name != "filing.txt" {
			t.Errorf("Record name got %s", sessions.SavedRecords[0].Name)
		}
		if result.JobPayload.SectionCount != len(sessions.SavedRecords[0].Financial) {
			t.Errorf("SectionCount %d does not match extracted sections %d",
				result.JobPayload.SectionCount, len(sessions.SavedRecords[0].Financial))
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("Temp file should be removed after extraction")
		}
	})

	t.Run("Failure_Missing_File", func(t *testing.T) {
		s := docqa.NewService(&MockSessionStore{}, nil)

		result := s.ExtractDocument(ctx, newJob("does-not-exist.txt", "does-not-exist.txt"))

		if result.Status != jobModel.JobStatusError {
			t.Errorf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
		}
	})

	t.Run("Failure_Session_Save", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "filing.txt")
		if err := os.WriteFile(path, []byte("Revenue 100 200\nCost 50 60\n"), 0644); err != nil {
			t.Fatalf("Couldn't write fixture: %v", err)
		}

		sessions := &MockSessionStore{
			OnSaveDocument: func(ctx context.Context, id string, r docModel.DocumentRecord) error {
				return errors.New("disk full")
			},
		}
		s := docqa.NewService(sessions, nil)

		result := s.ExtractDocument(ctx, newJob(path, "filing.txt"))

		if result.Status != jobModel.JobStatusError {
			t.Errorf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("Temp file should be removed even when the job fails")
		}
	})
}
