package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
)

type InMemoryMessageStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]jobModel.JobPayload
}

func InitMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]jobModel.JobPayload),
	}
}

func (store *InMemoryMessageStore) TrySaveChat(ctx context.Context, sessionId string, exchange jobModel.JobPayload) error {
	if sessionId == "" {
		return errors.New("empty session id")
	}
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	history := append(store.chatMap[sessionId], exchange)
	if len(history) > config.MessageHistoryWindow {
		history = history[len(history)-config.MessageHistoryWindow:]
	}
	store.chatMap[sessionId] = history
	inMemLogger.Debug("Saved exchange to message store", "sessionId", sessionId)
	return nil
}

// GetMessageHistory returns the stored exchanges JSON encoded, oldest first,
// the same shape the redis store returns.
func (store *InMemoryMessageStore) GetMessageHistory(ctx context.Context, sessionId string) ([]string, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	history := store.chatMap[sessionId]
	result := make([]string, 0, len(history))
	for _, exchange := range history {
		data, err := json.Marshal(exchange)
		if err != nil {
			return nil, err
		}
		result = append(result, string(data))
	}
	return result, nil
}
