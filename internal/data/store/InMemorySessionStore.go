package store

import (
	"context"
	"sync"

	"github.com/kaviapp/kavi/internal/domain/candidateModel"
)

type InMemorySessionStore struct {
	sessionMutex *sync.RWMutex
	sessionMap   map[string]candidateModel.Session
}

func InitInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessionMutex: new(sync.RWMutex),
		sessionMap:   make(map[string]candidateModel.Session),
	}
}

func (store *InMemorySessionStore) SaveSession(ctx context.Context, session candidateModel.Session) error {
	store.sessionMutex.Lock()
	defer store.sessionMutex.Unlock()
	store.sessionMap[session.Id] = session
	return nil
}

func (store *InMemorySessionStore) GetSession(ctx context.Context, sessionId string) (candidateModel.Session, bool) {
	store.sessionMutex.RLock()
	defer store.sessionMutex.RUnlock()
	result, found := store.sessionMap[sessionId]
	return result, found
}

func (store *InMemorySessionStore) DeleteSession(ctx context.Context, sessionId string) {
	store.sessionMutex.Lock()
	defer store.sessionMutex.Unlock()
	delete(store.sessionMap, sessionId)
}
