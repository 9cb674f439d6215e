package store

import (
	"context"
	"errors"
	"sync"

	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
)

type InMemoryTicketStore struct {
	ticketLock *sync.RWMutex
	ticketMap  map[string]sessionModel.Ticket
}

func InitInMemoryTicketStore() *InMemoryTicketStore {
	return &InMemoryTicketStore{
		ticketLock: new(sync.RWMutex),
		ticketMap:  make(map[string]sessionModel.Ticket),
	}
}

func (store *InMemoryTicketStore) SaveTicket(ctx context.Context, ticket sessionModel.Ticket) error {
	if ticket.Id == "" {
		return errors.New("ticket without id")
	}
	store.ticketLock.Lock()
	defer store.ticketLock.Unlock()
	store.ticketMap[ticket.Id] = ticket
	inMemLogger.Info("Saved ticket", "ticketId", ticket.Id)
	return nil
}

func (store *InMemoryTicketStore) GetTicket(ctx context.Context, id string) (sessionModel.Ticket, bool) {
	store.ticketLock.RLock()
	defer store.ticketLock.RUnlock()
	ticket, found := store.ticketMap[id]
	return ticket, found
}
