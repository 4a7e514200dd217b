package store

import (
	"context"
	"encoding/json"

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/data/redisStore"
	"github.com/kaviapp/kavi/internal/domain/candidateModel"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

type RedisSessionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisSessionStore)
	if backing == nil {
		return nil
	}
	return &RedisSessionStore{
		store:  backing,
		logger: logger_i.NewLogger("SessionStore"),
	}
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, session candidateModel.Session) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", session.Id)
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, session.Id, data, config.RedisSessionStoreTTL)
	if err == nil {
		log.Debug("Saved session to Redis")
	}
	return err
}

func (s *RedisSessionStore) GetSession(ctx context.Context, sessionId string) (candidateModel.Session, bool) {
	var session candidateModel.Session
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)

	val, err := s.store.Get(ctx, sessionId)
	if s.store.IsNil(err) {
		return session, false
	} else if err != nil {
		log.Error("Error reading session from Redis", "error", err)
		return session, false
	}

	if err = json.Unmarshal([]byte(val), &session); err != nil {
		log.Error("Error unmarshalling session", "error", err)
		return session, false
	}
	return session, true
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, sessionId string) {
	if err := s.store.Del(ctx, sessionId); err != nil {
		s.logger.Error("Error deleting session from Redis", "sessionId", sessionId, "error", err)
		return
	}
	s.logger.Debug("Session deleted from Redis", "sessionId", sessionId)
}

func TestSessionStore(store *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
