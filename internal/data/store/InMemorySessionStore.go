package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
)

type sessionData struct {
	documents map[string]docModel.DocumentRecord
	history   []jobModel.JobPayload
}

type InMemorySessionStore struct {
	lock     *sync.RWMutex
	sessions map[string]*sessionData
}

func InitInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		lock:     new(sync.RWMutex),
		sessions: make(map[string]*sessionData),
	}
}

func (store *InMemorySessionStore) ValidateSession(ctx context.Context, id string) bool {
	store.lock.RLock()
	defer store.lock.RUnlock()
	_, ok := store.sessions[id]
	return ok
}

func (store *InMemorySessionStore) InitSession(ctx context.Context, id string) error {
	store.lock.Lock()
	defer store.lock.Unlock()
	store.sessions[id] = &sessionData{documents: make(map[string]docModel.DocumentRecord)}
	return nil
}

func (store *InMemorySessionStore) SaveDocument(ctx context.Context, sessionId string, record docModel.DocumentRecord) error {
	store.lock.Lock()
	defer store.lock.Unlock()
	sess, ok := store.sessions[sessionId]
	if !ok {
		return errors.New("invalid session id")
	}
	sess.documents[record.Name] = record
	inMemLogger.Debug(sessionId, " : Saved document record", "document", record.Name)
	return nil
}

func (store *InMemorySessionStore) GetDocuments(ctx context.Context, sessionId string) (map[string]docModel.DocumentRecord, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	sess, ok := store.sessions[sessionId]
	if !ok {
		return map[string]docModel.DocumentRecord{}, nil
	}
	records := make(map[string]docModel.DocumentRecord, len(sess.documents))
	for name, record := range sess.documents {
		records[name] = record
	}
	return records, nil
}

func (store *InMemorySessionStore) AppendConversation(ctx context.Context, sessionId string, payload jobModel.JobPayload) error {
	store.lock.Lock()
	defer store.lock.Unlock()
	sess, ok := store.sessions[sessionId]
	if !ok {
		return errors.New("invalid session id")
	}
	sess.history = append(sess.history, payload)
	inMemLogger.Debug(sessionId, " : Saved conversation to session store")
	return nil
}

func (store *InMemorySessionStore) GetHistory(ctx context.Context, sessionId string) ([]string, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	sess, ok := store.sessions[sessionId]
	if !ok {
		return nil, nil
	}
	start := 0
	if len(sess.history) > 5 {
		start = len(sess.history) - 5
	}
	var entries []string
	for _, payload := range sess.history[start:] {
		data, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		entries = append(entries, string(data))
	}
	return entries, nil
}
