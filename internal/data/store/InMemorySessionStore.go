package store

import (
	"context"
	"time"

	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/patrickmn/go-cache"
)

// InMemorySessionStore keeps sessions in a TTL cache: a session that sees no
// traffic for ttl is evicted by the janitor and starts over as idle.
type InMemorySessionStore struct {
	cache *cache.Cache
	locks *keyedMutex
}

func InitInMemorySessionStore(ttl time.Duration, cleanupInterval time.Duration) *InMemorySessionStore {
	return &InMemorySessionStore{
		cache: cache.New(ttl, cleanupInterval),
		locks: newKeyedMutex(),
	}
}

func (store *InMemorySessionStore) GetSession(ctx context.Context, token string) (sessionModel.SessionState, bool) {
	if x, found := store.cache.Get(token); found {
		return x.(sessionModel.SessionState), true
	}
	return sessionModel.SessionState{}, false
}

func (store *InMemorySessionStore) UpdateSession(ctx context.Context, token string, fn func(state *sessionModel.SessionState) error) (sessionModel.SessionState, error) {
	unlock := store.locks.Lock(token)
	defer unlock()

	state, found := store.GetSession(ctx, token)
	if !found {
		state = sessionModel.NewSessionState(token)
		inMemLogger.Debug("Created session", "session", token)
	}
	if err := fn(&state); err != nil {
		return state, err
	}
	state.UpdatedAt = time.Now()
	store.cache.Set(token, state, cache.DefaultExpiration)
	return state, nil
}

func (store *InMemorySessionStore) DeleteSession(ctx context.Context, token string) error {
	unlock := store.locks.Lock(token)
	defer unlock()
	store.cache.Delete(token)
	return nil
}

func (store *InMemorySessionStore) Count() int {
	return store.cache.ItemCount()
}
