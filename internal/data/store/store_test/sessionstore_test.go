package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/data/redisStore"
	"github.com/nvasani/findocqa/internal/data/store"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func newSessionStore(t *testing.T) *store.RedisSessionStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestSessionStore(redisStore.NewTestStore(client))
}

func TestRedisSessionStore_Lifecycle(t *testing.T) {
	sessionStore := newSessionStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	sessionID := "sess_abc_123"

	t.Run("Unknown session fails validation", func(t *testing.T) {
		if sessionStore.ValidateSession(ctx, sessionID) {
			t.Error("Expected validation to fail before InitSession")
		}
	})

	t.Run("Init and Validate", func(t *testing.T) {
		if err := sessionStore.InitSession(ctx, sessionID); err != nil {
			t.Fatalf("InitSession failed: %v", err)
		}
		if !sessionStore.ValidateSession(ctx, sessionID) {
			t.Error("Expected validation to pass after InitSession")
		}
	})

	t.Run("Save and Get Documents", func(t *testing.T) {
		record := docModel.DocumentRecord{
			Name:        "report.pdf",
			ContentType: docModel.PDF,
			Financial: docModel.FinancialData{
				"Income Statement": docModel.MetricSet{
					"revenue": docModel.PeriodValues{"2023": decimal.NewFromInt(12345)},
				},
			},
		}

		if err := sessionStore.SaveDocument(ctx, sessionID, record); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}

		records, err := sessionStore.GetDocuments(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetDocuments failed: %v", err)
		}

		got, ok := records["report.pdf"]
		if !ok {
			t.Fatal("Document was saved but not found")
		}
		value := got.Financial["Income Statement"]["revenue"]["2023"]
		if !value.Equal(decimal.NewFromInt(12345)) {
			t.Errorf("Financial data mismatch! Got %s, want 12345", value)
		}
	})

	t.Run("Same name replaces record", func(t *testing.T) {
		record := docModel.DocumentRecord{Name: "report.pdf", ContentType: docModel.XLSX}
		if err := sessionStore.SaveDocument(ctx, sessionID, record); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}

		records, _ := sessionStore.GetDocuments(ctx, sessionID)
		if len(records) != 1 {
			t.Errorf("Expected 1 record after overwrite, got %d", len(records))
		}
		if records["report.pdf"].ContentType != docModel.XLSX {
			t.Errorf("Expected the newer record to win, got %v", records["report.pdf"].ContentType)
		}
	})
}

func TestRedisSessionStore_History(t *testing.T) {
	sessionStore := newSessionStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "history-trace")
	sessionID := "sess_history"

	t.Run("Append rejects unknown session", func(t *testing.T) {
		err := sessionStore.AppendConversation(ctx, "ghost-session", jobModel.JobPayload{Question: "q"})
		if err == nil {
			t.Error("Expected error appending to an unknown session")
		}
	})

	if err := sessionStore.InitSession(ctx, sessionID); err != nil {
		t.Fatalf("InitSession failed: %v", err)
	}

	t.Run("History keeps only recent entries", func(t *testing.T) {
		questions := []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7"}
		for _, q := range questions {
			payload := jobModel.JobPayload{Question: q, Answer: "a-" + q}
			if err := sessionStore.AppendConversation(ctx, sessionID, payload); err != nil {
				t.Fatalf("AppendConversation(%s) failed: %v", q, err)
			}
		}

		history, err := sessionStore.GetHistory(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		if len(history) != 5 {
			t.Errorf("Expected the 5 most recent entries, got %d", len(history))
		}
	})
}
