package chatbot_test

import (
	"context"
	"iter"
	"sync"

	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
)

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) iter.Seq2[string, error]

	mu      sync.Mutex
	prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) iter.Seq2[string, error] {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return fragments("mocked llm response")
}

func (m *MockLLM) Name() string { return "mock" }

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *MockLLM) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// MockTicketStore implements sessionModel.TicketStore
type MockTicketStore struct {
	OnSaveTicket func(ctx context.Context, ticket sessionModel.Ticket) error

	mu    sync.Mutex
	saved []sessionModel.Ticket
}

func (m *MockTicketStore) SaveTicket(ctx context.Context, ticket sessionModel.Ticket) error {
	if m.OnSaveTicket != nil {
		if err := m.OnSaveTicket(ctx, ticket); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, ticket)
	return nil
}

func (m *MockTicketStore) GetTicket(ctx context.Context, id string) (sessionModel.Ticket, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.saved {
		if t.Id == id {
			return t, true
		}
	}
	return sessionModel.Ticket{}, false
}

func (m *MockTicketStore) Saved() []sessionModel.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sessionModel.Ticket(nil), m.saved...)
}

// MockSessionStore implements sessionModel.SessionStore
type MockSessionStore struct {
	OnUpdateSession func(ctx context.Context, token string, fn func(*sessionModel.SessionState) error) (sessionModel.SessionState, error)
}

func (m *MockSessionStore) GetSession(ctx context.Context, token string) (sessionModel.SessionState, bool) {
	return sessionModel.SessionState{}, false
}

func (m *MockSessionStore) UpdateSession(ctx context.Context, token string, fn func(*sessionModel.SessionState) error) (sessionModel.SessionState, error) {
	if m.OnUpdateSession != nil {
		return m.OnUpdateSession(ctx, token, fn)
	}
	state := sessionModel.NewSessionState(token)
	return state, fn(&state)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, token string) error {
	return nil
}

func fragments(parts ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range parts {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func failing(err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", err)
	}
}
