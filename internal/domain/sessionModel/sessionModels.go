package sessionModel

import (
	"context"
	"time"
)

type TicketStep string

const (
	StepNone        TicketStep = ""
	StepCategory    TicketStep = "category"
	StepSubject     TicketStep = "subject"
	StepDescription TicketStep = "description"
)

// TicketData fields are filled left to right as the dialogue advances.
// An empty string means the field has not been collected yet.
type TicketData struct {
	Category    string `json:"category,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description,omitempty"`
}

type SessionState struct {
	Token           string     `json:"token"`
	TicketStep      TicketStep `json:"ticket_step"`
	TicketGenerated bool       `json:"ticket_generated"`
	TicketData      TicketData `json:"ticket_data"`
	LastTicketId    string     `json:"last_ticket_id,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func NewSessionState(token string) SessionState {
	return SessionState{Token: token, TicketStep: StepNone}
}

func (s SessionState) InTicketFlow() bool {
	return s.TicketStep != StepNone
}

type Ticket struct {
	Id           string    `json:"id"`
	SessionToken string    `json:"session_token"`
	Category     string    `json:"category"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionStore hands out session state by token. UpdateSession loads the state
// (creating the idle default on first contact), applies fn and saves the result
// while holding a lock for that token, so concurrent requests for one session
// never lose each other's writes. If fn fails nothing is saved.
type SessionStore interface {
	GetSession(ctx context.Context, token string) (SessionState, bool)
	UpdateSession(ctx context.Context, token string, fn func(state *SessionState) error) (SessionState, error)
	DeleteSession(ctx context.Context, token string) error
}

type TicketStore interface {
	SaveTicket(ctx context.Context, ticket Ticket) error
	GetTicket(ctx context.Context, id string) (Ticket, bool)
}
