package mcpServer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/akolanti/SupportBot/internal/chatbot"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = logger_i.NewLogger("mcpServer")

type AskInput struct {
	Question  string `json:"question" jsonschema:"the customer's question or ticket dialogue input"`
	SessionId string `json:"session_id,omitempty" jsonschema:"conversation token, the shared guest session when empty"`
}

type AskOutput struct {
	Answer   string   `json:"answer"`
	Outcome  string   `json:"outcome"`
	Sources  []string `json:"sources,omitempty"`
	TicketId string   `json:"ticket_id,omitempty"`
}

type TicketInput struct {
	Id string `json:"id" jsonschema:"ticket id returned when the ticket was created"`
}

type TicketOutput struct {
	Id          string `json:"id"`
	SessionId   string `json:"session_id"`
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type tools struct {
	bot     chatbot.Service
	tickets sessionModel.TicketStore
}

// NewServer exposes the chatbot as the ask_support and get_ticket tools.
func NewServer(bot chatbot.Service, tickets sessionModel.TicketStore) *mcp.Server {
	t := &tools{bot: bot, tickets: tickets}
	server := mcp.NewServer(&mcp.Implementation{Name: config.McpServerName, Version: config.McpServerVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_support",
		Description: "Ask the " + config.PlatformName + " support assistant. Send \"generate ticket\" to open a support ticket.",
	}, t.askSupport)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_ticket",
		Description: "Look up a support ticket by id.",
	}, t.getTicket)

	return server
}

// Handler serves server over streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

func (t *tools) askSupport(ctx context.Context, _ *mcp.CallToolRequest, in AskInput) (*mcp.CallToolResult, AskOutput, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" || len(question) > config.MaxQuestionLength {
		return errorResult("question must be between 1 and %d characters", config.MaxQuestionLength), AskOutput{}, nil
	}
	session := in.SessionId
	if session == "" {
		session = config.GuestSessionToken
	}

	reply := t.bot.Answer(ctx, question, session)
	logger.WithTrace(ctx).Debug("ask_support answered", "session", session, "outcome", reply.Outcome)

	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: reply.Text}}}, AskOutput{
		Answer:   reply.Text,
		Outcome:  string(reply.Outcome),
		Sources:  reply.Sources,
		TicketId: reply.TicketId,
	}, nil
}

func (t *tools) getTicket(ctx context.Context, _ *mcp.CallToolRequest, in TicketInput) (*mcp.CallToolResult, TicketOutput, error) {
	ticket, found := t.tickets.GetTicket(ctx, in.Id)
	if !found {
		return errorResult("ticket %q not found", in.Id), TicketOutput{}, nil
	}
	out := TicketOutput{
		Id:          ticket.Id,
		SessionId:   ticket.SessionToken,
		Category:    ticket.Category,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		CreatedAt:   ticket.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	text := fmt.Sprintf("Ticket %s [%s] %s: %s", out.Id, out.Category, out.Subject, out.Description)
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}, out, nil
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}
