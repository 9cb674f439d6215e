package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/data/redisStore"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore saves each session as JSON with a sliding TTL. The per-token
// lock is process local; a single API process owns the session keyspace.
type RedisSessionStore struct {
	store  *redisStore.Store
	locks  *keyedMutex
	ttl    time.Duration
	logger *logger_i.Logger
}

func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	s := redisStore.GetRedisStore(ctx, config.RedisSessionStore)
	if s == nil {
		return nil
	}
	return NewRedisSessionStore(s, config.SessionTTL)
}

func NewRedisSessionStore(s *redisStore.Store, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		store:  s,
		locks:  newKeyedMutex(),
		ttl:    ttl,
		logger: logger_i.NewLogger("SessionStore"),
	}
}

func (s *RedisSessionStore) GetSession(ctx context.Context, token string) (sessionModel.SessionState, bool) {
	state, found, err := s.load(ctx, token)
	if err != nil {
		s.logger.WithTrace(ctx).Error("Error reading session", "session", token, "error", err)
		return sessionModel.SessionState{}, false
	}
	return state, found
}

func (s *RedisSessionStore) UpdateSession(ctx context.Context, token string, fn func(state *sessionModel.SessionState) error) (sessionModel.SessionState, error) {
	log := s.logger.WithTrace(ctx).With("session", token)
	unlock := s.locks.Lock(token)
	defer unlock()

	state, found, err := s.load(ctx, token)
	if err != nil {
		return state, err
	}
	if !found {
		state = sessionModel.NewSessionState(token)
		log.Debug("Created session")
	}
	if err = fn(&state); err != nil {
		return state, err
	}
	state.UpdatedAt = time.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return state, fmt.Errorf("marshal session: %w", err)
	}
	if err = s.store.Set(ctx, sessionKeyPrefix+token, data, s.ttl); err != nil {
		log.Error("Error saving session", "error", err)
		return state, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, token string) error {
	unlock := s.locks.Lock(token)
	defer unlock()
	return s.store.Del(ctx, sessionKeyPrefix+token)
}

func (s *RedisSessionStore) load(ctx context.Context, token string) (sessionModel.SessionState, bool, error) {
	var state sessionModel.SessionState
	val, err := s.store.Get(ctx, sessionKeyPrefix+token)
	if s.store.IsNil(err) {
		return state, false, nil
	} else if err != nil {
		return state, false, fmt.Errorf("get session: %w", err)
	}
	if err = json.Unmarshal([]byte(val), &state); err != nil {
		return state, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return state, true, nil
}
