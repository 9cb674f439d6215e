package mcpServer

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/SupportBot/internal/chatbot"
	"github.com/akolanti/SupportBot/internal/chatbot/chatbot_test"
	"github.com/akolanti/SupportBot/internal/data/store"
	"github.com/akolanti/SupportBot/internal/domain/commonModels"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, tickets sessionModel.TicketStore) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	sessions := store.InitInMemorySessionStore(time.Hour, time.Hour)
	bot := chatbot.NewService([]commonModels.FaqEntry{
		{Id: "1", Label: "How can I withdraw my earnings?", Answer: "Open the wallet page and choose withdraw."},
	}, &chatbot_test.MockLLM{}, sessions, tickets, chatbot.DefaultOptions())

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := NewServer(bot, tickets).Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestListTools(t *testing.T) {
	session := connect(t, store.InitInMemoryTicketStore())
	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"ask_support", "get_ticket"}, names)
}

func TestAskSupport_Generates(t *testing.T) {
	session := connect(t, store.InitInMemoryTicketStore())
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "ask_support",
		Arguments: map[string]any{"question": "how can I withdraw my earnings?", "session_id": "mcp-1"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "mocked llm response", text(t, res))
}

func TestAskSupport_RejectsEmptyQuestion(t *testing.T) {
	session := connect(t, store.InitInMemoryTicketStore())
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "ask_support",
		Arguments: map[string]any{"question": "   "},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestTicketThroughTools(t *testing.T) {
	ctx := context.Background()
	tickets := store.InitInMemoryTicketStore()
	session := connect(t, tickets)

	var last *mcp.CallToolResult
	for _, q := range []string{"generate ticket", "Account Access Issue", "app crashes", "crashes when I open the wallet"} {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "ask_support",
			Arguments: map[string]any{"question": q, "session_id": "mcp-ticket"},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)
		last = res
	}

	out, ok := last.StructuredContent.(map[string]any)
	require.True(t, ok)
	saved, _ := out["ticket_id"].(string)
	require.NotEmpty(t, saved)
	_, found := tickets.GetTicket(ctx, saved)
	require.True(t, found)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_ticket", Arguments: map[string]any{"id": saved}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "[Account Access Issue] app crashes")

	res, err = session.CallTool(ctx, &mcp.CallToolParams{Name: "get_ticket", Arguments: map[string]any{"id": "missing"}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
