package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/SupportBot/internal/data/store"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionStoreFactories runs the same behaviour against both backends.
func sessionStoreFactories(t *testing.T) map[string]func() sessionModel.SessionStore {
	return map[string]func() sessionModel.SessionStore{
		"redis": func() sessionModel.SessionStore {
			_, s := newTestRedis(t)
			return store.NewRedisSessionStore(s, time.Hour)
		},
		"memory": func() sessionModel.SessionStore {
			return store.InitInMemorySessionStore(time.Hour, time.Minute)
		},
	}
}

func TestSessionStore_CreatesIdleSessionOnFirstContact(t *testing.T) {
	for name, factory := range sessionStoreFactories(t) {
		t.Run(name, func(t *testing.T) {
			sessions := factory()
			ctx := context.Background()

			_, found := sessions.GetSession(ctx, "new-user")
			assert.False(t, found)

			state, err := sessions.UpdateSession(ctx, "new-user", func(state *sessionModel.SessionState) error {
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, "new-user", state.Token)
			assert.Equal(t, sessionModel.StepNone, state.TicketStep)
			assert.False(t, state.TicketGenerated)
			assert.Equal(t, sessionModel.TicketData{}, state.TicketData)

			stored, found := sessions.GetSession(ctx, "new-user")
			require.True(t, found)
			assert.Equal(t, state.Token, stored.Token)
		})
	}
}

func TestSessionStore_UpdatePersists(t *testing.T) {
	for name, factory := range sessionStoreFactories(t) {
		t.Run(name, func(t *testing.T) {
			sessions := factory()
			ctx := context.Background()

			_, err := sessions.UpdateSession(ctx, "u1", func(state *sessionModel.SessionState) error {
				state.TicketStep = sessionModel.StepSubject
				state.TicketData.Category = "Refund Request"
				return nil
			})
			require.NoError(t, err)

			stored, found := sessions.GetSession(ctx, "u1")
			require.True(t, found)
			assert.Equal(t, sessionModel.StepSubject, stored.TicketStep)
			assert.Equal(t, "Refund Request", stored.TicketData.Category)
		})
	}
}

func TestSessionStore_FailedUpdateIsDiscarded(t *testing.T) {
	for name, factory := range sessionStoreFactories(t) {
		t.Run(name, func(t *testing.T) {
			sessions := factory()
			ctx := context.Background()

			_, err := sessions.UpdateSession(ctx, "u2", func(state *sessionModel.SessionState) error {
				state.TicketStep = sessionModel.StepCategory
				return errors.New("boom")
			})
			require.Error(t, err)

			_, found := sessions.GetSession(ctx, "u2")
			assert.False(t, found, "a failed update must not create the session")
		})
	}
}

func TestSessionStore_Delete(t *testing.T) {
	for name, factory := range sessionStoreFactories(t) {
		t.Run(name, func(t *testing.T) {
			sessions := factory()
			ctx := context.Background()

			_, err := sessions.UpdateSession(ctx, "u3", func(state *sessionModel.SessionState) error { return nil })
			require.NoError(t, err)
			require.NoError(t, sessions.DeleteSession(ctx, "u3"))

			_, found := sessions.GetSession(ctx, "u3")
			assert.False(t, found)
		})
	}
}

func TestSessionStore_ConcurrentUpdatesAreSerialised(t *testing.T) {
	for name, factory := range sessionStoreFactories(t) {
		t.Run(name, func(t *testing.T) {
			sessions := factory()
			ctx := context.Background()

			const writers = 40
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := sessions.UpdateSession(ctx, "shared", func(state *sessionModel.SessionState) error {
						// read-modify-write that loses data without per-token locking
						state.TicketData.Description += fmt.Sprintf("%d,", i%10)
						return nil
					})
					assert.NoError(t, err)
				}(i)
			}
			wg.Wait()

			stored, found := sessions.GetSession(ctx, "shared")
			require.True(t, found)
			assert.Len(t, stored.TicketData.Description, writers*2)
		})
	}
}

func TestRedisSessionStore_SlidingExpiry(t *testing.T) {
	mr, s := newTestRedis(t)
	sessions := store.NewRedisSessionStore(s, time.Minute)
	ctx := context.Background()

	_, err := sessions.UpdateSession(ctx, "ttl-user", func(state *sessionModel.SessionState) error {
		state.TicketStep = sessionModel.StepCategory
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("session:ttl-user"))

	mr.FastForward(2 * time.Minute)
	_, found := sessions.GetSession(ctx, "ttl-user")
	assert.False(t, found, "session should expire after its ttl")
}

func TestInMemorySessionStore_Expiry(t *testing.T) {
	sessions := store.InitInMemorySessionStore(20*time.Millisecond, time.Hour)
	ctx := context.Background()

	_, err := sessions.UpdateSession(ctx, "short", func(state *sessionModel.SessionState) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.Count())

	time.Sleep(40 * time.Millisecond)
	_, found := sessions.GetSession(ctx, "short")
	assert.False(t, found)
}
