package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/data/redisStore"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

const historyKeyPrefix = "history:"

type RedisMessageStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisMessageStore(ctx context.Context) *RedisMessageStore {
	s := redisStore.GetRedisStore(ctx, config.RedisMessageStore)
	if s == nil {
		return nil
	}
	return NewRedisMessageStore(s)
}

func NewRedisMessageStore(s *redisStore.Store) *RedisMessageStore {
	return &RedisMessageStore{
		store:  s,
		logger: logger_i.NewLogger("MessageStore"),
	}
}

func (s *RedisMessageStore) TrySaveChat(ctx context.Context, sessionId string, exchange jobModel.JobPayload) error {
	log := s.logger.WithTrace(ctx).With("session Id", sessionId)
	if sessionId == "" {
		err := errors.New("empty session id")
		log.Error("Failed Validation before saving", "err", err)
		return err
	}
	data, err := json.Marshal(exchange)
	if err != nil {
		log.Error("Error marshalling exchange", "err", err)
		return err
	}
	err = s.store.ListPushCapped(ctx, historyKeyPrefix+sessionId, data, config.MessageHistoryWindow, config.RedisMessageStoreTTL)
	if err != nil {
		log.Error("error saving chat", "error", err)
		return err
	}
	log.Debug("Saved chat successfully")
	return nil
}

func (s *RedisMessageStore) GetMessageHistory(ctx context.Context, sessionId string) ([]string, error) {
	log := s.logger.WithTrace(ctx).With("session Id", sessionId)
	log.Debug("Getting message history")

	res, err := s.store.ListGetLast(ctx, historyKeyPrefix+sessionId, config.MessageHistoryWindow)
	if err != nil {
		log.Error("Error getting history", "error", err)
		return nil, err
	}
	return res, nil
}
