package handlers

import (
	"context"
	"encoding/json"
	"iter"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/SupportBot/internal/api"
	"github.com/akolanti/SupportBot/internal/chatbot"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/data/store"
	"github.com/akolanti/SupportBot/internal/domain/commonModels"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/internal/job"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{}

func (stubProvider) Generate(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("Open the wallet page.", nil)
	}
}

func (stubProvider) Name() string { return "stub" }

var testService *job.Service

func TestMain(m *testing.M) {
	testService = job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobModel.Job, config.BufferLimit),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          store.InitInMemoryJobStore(),
		MessageStore:      store.InitMessageStore(),
		SessionStore:      store.InitInMemorySessionStore(time.Hour, time.Hour),
		TicketStore:       store.InitInMemoryTicketStore(),
	})
	bot := chatbot.NewService([]commonModels.FaqEntry{
		{Id: "1", Label: "How can I withdraw my earnings?", Answer: "Open the wallet page and choose withdraw."},
	}, stubProvider{}, testService.SessionStore, testService.TicketStore, chatbot.DefaultOptions())
	InitJobHandler(testService, bot)
	os.Exit(m.Run())
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Post("/chat", ChatHandler)
	r.Post("/ask", AskHandler)
	r.Get("/status/{id}", GetStatusHandler)
	r.Get("/help/get/{question}", HelpQueueHandler)
	r.Get("/help/answer/{question}", HelpAnswerHandler)
	r.Get("/ticket/{id}", GetTicketHandler)
	r.Get("/session/{id}", GetSessionHandler)
	r.Get("/history/{id}", GetHistoryHandler)
	return r
}

func do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), config.TRACE_ID_KEY, "test-trace"))
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	return rec
}

func drainQueue() jobModel.Job {
	return <-testService.JobChannel
}

func TestChatHandler_QueuesJob(t *testing.T) {
	rec := do(t, http.MethodPost, "/chat", `{"message":"how can I withdraw my earnings?","session_id":"s-chat"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var res api.InitJobResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.NotEmpty(t, res.Id)
	assert.Equal(t, "status/"+res.Id, res.StatusURL)
	assert.Equal(t, "s-chat", res.SessionId)

	queued := drainQueue()
	assert.Equal(t, res.Id, queued.Id)
	assert.Equal(t, "s-chat", queued.SessionId)
	assert.Equal(t, "test-trace", queued.TraceId)

	status := do(t, http.MethodGet, "/status/"+res.Id, "")
	require.Equal(t, http.StatusOK, status.Code)
	var jobRes api.JobResponse
	require.NoError(t, json.NewDecoder(status.Body).Decode(&jobRes))
	assert.Equal(t, string(jobModel.JobStatusQueued), jobRes.Result.Status)
}

func TestChatHandler_DefaultsToGuest(t *testing.T) {
	rec := do(t, http.MethodPost, "/chat", `{"message":"hello"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, config.GuestSessionToken, drainQueue().SessionId)
}

func TestChatHandler_RejectsBadBodies(t *testing.T) {
	for _, body := range []string{``, `{`, `{"message":""}`, `{"session_id":"x"}`, `{"message":"` + strings.Repeat("a", 2001) + `"}`} {
		rec := do(t, http.MethodPost, "/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	assert.Empty(t, testService.JobChannel)
}

func TestGetStatusHandler_NotFound(t *testing.T) {
	rec := do(t, http.MethodGet, "/status/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var res api.JobResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.NotNil(t, res.Error)
	assert.Equal(t, "Job not found", res.Error.Message)
}

func TestAskHandler_Answers(t *testing.T) {
	rec := do(t, http.MethodPost, "/ask", `{"question":"how can I withdraw my earnings?","session_id":"s-ask"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res api.AnswerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "Open the wallet page.", res.Answer)
	assert.Equal(t, string(jobModel.OutcomeGenerated), res.Outcome)
	assert.Equal(t, []string{"How can I withdraw my earnings?"}, res.Sources)
}

func TestTicketFlowOverHTTP(t *testing.T) {
	var last api.AnswerResponse
	for _, q := range []string{"generate ticket", "Refund Request", "charged twice", "charged twice on May 2"} {
		rec := do(t, http.MethodPost, "/ask", `{"question":"`+q+`","session_id":"s-ticket"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&last))
	}
	require.NotEmpty(t, last.TicketId)

	rec := do(t, http.MethodGet, "/ticket/"+last.TicketId, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ticket api.TicketResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ticket))
	assert.Equal(t, "Refund Request", ticket.Category)
	assert.Equal(t, "charged twice", ticket.Subject)
	assert.Equal(t, "s-ticket", ticket.SessionId)

	rec = do(t, http.MethodGet, "/session/s-ticket", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var session api.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
	assert.True(t, session.TicketGenerated)
	assert.Equal(t, "none", session.TicketStep)
	assert.Equal(t, last.TicketId, session.LastTicketId)

	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, "/ticket/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, "/session/nobody", "").Code)
}

func TestHelpRoutes(t *testing.T) {
	rec := do(t, http.MethodGet, "/help/answer/hello%20there", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var answer api.HelpAnswerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&answer))
	assert.Equal(t, "success", answer.Status)
	assert.Equal(t, "hello there", answer.Question)
	assert.Equal(t, chatbot.GreetingReply, answer.Answer)

	rec = do(t, http.MethodGet, "/help/get/how%20do%20I%20withdraw", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	var queued api.QueuedQuestionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&queued))
	assert.Equal(t, "queued", queued.Status)
	assert.Equal(t, "how do I withdraw", queued.Question)
	assert.Equal(t, queued.Id, drainQueue().Id)
}

func TestGetHistoryHandler(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testService.MessageStore.TrySaveChat(ctx, "s-hist", jobModel.JobPayload{
		Question: "q1", Answer: "a1", Outcome: jobModel.OutcomeGenerated,
	}))

	rec := do(t, http.MethodGet, "/history/s-hist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history api.HistoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&history))
	require.Len(t, history.Exchanges, 1)
	assert.Equal(t, "q1", history.Exchanges[0].Question)
	assert.Equal(t, "a1", history.Exchanges[0].Answer)
}
