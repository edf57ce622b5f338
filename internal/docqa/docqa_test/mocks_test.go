package docqa_test

import (
	"context"

	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
)

type MockSessionStore struct {
	OnGetDocuments func(ctx context.Context, sessionId string) (map[string]docModel.DocumentRecord, error)
	OnSaveDocument func(ctx context.Context, sessionId string, record docModel.DocumentRecord) error
	SavedRecords   []docModel.DocumentRecord
}

func (m *MockSessionStore) ValidateSession(ctx context.Context, id string) bool { return true }

func (m *MockSessionStore) InitSession(ctx context.Context, id string) error { return nil }

func (m *MockSessionStore) SaveDocument(ctx context.Context, sessionId string, record docModel.DocumentRecord) error {
	m.SavedRecords = append(m.SavedRecords, record)
	if m.OnSaveDocument != nil {
		return m.OnSaveDocument(ctx, sessionId, record)
	}
	return nil
}

func (m *MockSessionStore) GetDocuments(ctx context.Context, sessionId string) (map[string]docModel.DocumentRecord, error) {
	if m.OnGetDocuments != nil {
		return m.OnGetDocuments(ctx, sessionId)
	}
	return map[string]docModel.DocumentRecord{}, nil
}

func (m *MockSessionStore) AppendConversation(ctx context.Context, sessionId string, payload jobModel.JobPayload) error {
	return nil
}

func (m *MockSessionStore) GetHistory(ctx context.Context, sessionId string) ([]string, error) {
	return []string{}, nil
}

type MockProvider struct {
	OnGenerate    func(ctx context.Context, question string, docContext string, history []string) (string, error)
	GenerateCalls int
}

func (m *MockProvider) Name() string { return "mock-model" }

func (m *MockProvider) Generate(ctx context.Context, question string, docContext string, history []string) (string, error) {
	m.GenerateCalls++
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, question, docContext, history)
	}
	return "model answer", nil
}
