package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/data/redisStore"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

const ticketKeyPrefix = "ticket:"

type RedisTicketStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisTicketStore(ctx context.Context) *RedisTicketStore {
	s := redisStore.GetRedisStore(ctx, config.RedisTicketStore)
	if s == nil {
		return nil
	}
	return NewRedisTicketStore(s)
}

func NewRedisTicketStore(s *redisStore.Store) *RedisTicketStore {
	return &RedisTicketStore{
		store:  s,
		logger: logger_i.NewLogger("TicketStore"),
	}
}

func (s *RedisTicketStore) SaveTicket(ctx context.Context, ticket sessionModel.Ticket) error {
	if ticket.Id == "" {
		return errors.New("ticket without id")
	}
	data, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	if err = s.store.Set(ctx, ticketKeyPrefix+ticket.Id, data, config.RedisTicketStoreTTL); err != nil {
		return err
	}
	s.logger.WithTrace(ctx).Info("Saved ticket", "ticketId", ticket.Id, "category", ticket.Category)
	return nil
}

func (s *RedisTicketStore) GetTicket(ctx context.Context, id string) (sessionModel.Ticket, bool) {
	var ticket sessionModel.Ticket
	val, err := s.store.Get(ctx, ticketKeyPrefix+id)
	if s.store.IsNil(err) {
		return ticket, false
	} else if err != nil {
		s.logger.WithTrace(ctx).Error("Error reading ticket", "ticketId", id, "error", err)
		return ticket, false
	}
	if err = json.Unmarshal([]byte(val), &ticket); err != nil {
		s.logger.WithTrace(ctx).Error("Error unmarshalling ticket", "ticketId", id, "error", err)
		return ticket, false
	}
	return ticket, true
}
