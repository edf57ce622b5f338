package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/data/redisStore"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

type RedisSessionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisSessionStore)
	if inner == nil {
		return nil
	}
	return &RedisSessionStore{
		store:  inner,
		logger: logger_i.NewLogger("SessionStore"),
	}
}

func sessionKey(id string) string { return "sess:" + id }
func docsKey(id string) string    { return "sess:" + id + ":docs" }
func historyKey(id string) string { return "sess:" + id + ":history" }

func (s *RedisSessionStore) ValidateSession(ctx context.Context, id string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", id)
	log.Debug("validating session")
	isFound, err := s.store.Exists(ctx, sessionKey(id))
	if s.store.IsNil(err) {
		return false
	} else if err != nil {
		log.Error("Failed to check if session exists", "err", err)
		return false
	}
	return isFound
}

func (s *RedisSessionStore) InitSession(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", id)
	log.Debug("Initializing new session")
	return s.store.Set(ctx, sessionKey(id), "1", config.RedisSessionStoreTTL)
}

// SaveDocument replaces any record stored under the same document name.
func (s *RedisSessionStore) SaveDocument(ctx context.Context, sessionId string, record docModel.DocumentRecord) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)
	data, err := json.Marshal(record)
	if err != nil {
		log.Error("Error marshalling document record", "error:", err)
		return err
	}
	if err := s.store.HashSet(ctx, docsKey(sessionId), record.Name, data); err != nil {
		log.Error("error saving document record", "error:", err)
		return err
	}
	log.Debug("Saved document record", "document", record.Name)
	return s.store.Expire(ctx, docsKey(sessionId), config.RedisSessionStoreTTL)
}

func (s *RedisSessionStore) GetDocuments(ctx context.Context, sessionId string) (map[string]docModel.DocumentRecord, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)
	raw, err := s.store.HashGetAll(ctx, docsKey(sessionId))
	if err != nil {
		log.Error("Error getting documents", "error:", err)
		return nil, err
	}

	records := make(map[string]docModel.DocumentRecord, len(raw))
	for name, data := range raw {
		var record docModel.DocumentRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			log.Error("Skipping corrupt document record", "document", name, "error:", err)
			continue
		}
		records[name] = record
	}
	return records, nil
}

func (s *RedisSessionStore) AppendConversation(ctx context.Context, sessionId string, payload jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)
	if !s.ValidateSession(ctx, sessionId) {
		err := errors.New("invalid session id")
		log.Error("Failed validation before saving conversation", "err", err)
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error("Error marshalling conversation", "error:", err)
		return err
	}
	if err := s.store.ListPush(ctx, historyKey(sessionId), data); err != nil {
		log.Error("error saving conversation", "error:", err)
		return err
	}
	log.Debug("Saved conversation entry")
	return s.store.Expire(ctx, historyKey(sessionId), config.RedisSessionStoreTTL)
}

func (s *RedisSessionStore) GetHistory(ctx context.Context, sessionId string) ([]string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)
	log.Debug("Getting conversation history")

	res, err := s.store.ListGet5PastEntries(ctx, historyKey(sessionId))
	if err != nil {
		log.Error("Error getting history", "error:", err)
		return nil, err
	}
	return res, nil
}

func TestSessionStore(store *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
