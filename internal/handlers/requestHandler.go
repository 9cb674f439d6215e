package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/akolanti/SupportBot/internal/adapter"
	"github.com/akolanti/SupportBot/internal/adapter/utils"
	"github.com/akolanti/SupportBot/internal/api"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

var errHandlerNotReady = errors.New("job handler not initialised")

type newJobData struct {
	id        string
	sessionId string
	message   string
	traceId   string
}

// GetHandler godoc
// @Summary      Health check
// @Tags         Health
// @Success      200
// @Router       /health [get]
func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ChatHandler godoc
// @Summary      Queue a chat message
// @Description  Accepts a message and an optional session id, queues it for a worker and returns a job id to poll.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest      true  "Message and optional session id"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request) {
		return
	}
	var requestData api.ChatRequest
	if !decodeBody(w, request, &requestData) {
		return
	}
	processNewJobData(request, w, requestData.Message, requestData.SessionID)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a job and, once complete, its answer.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, traceId(r.Context()))

	logRH.Debug("Get Status Request", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// AskHandler godoc
// @Summary      Ask a question and wait for the answer
// @Description  Runs the chatbot synchronously: ticket dialogue, greetings, FAQ matching and generation.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest      true  "Question and optional session id"
// @Success      200      {object}  api.AnswerResponse
// @Failure      400      {object}  api.JobResponse     "Invalid request data"
// @Router       /ask [post]
func AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r) {
		return
	}
	var requestData api.AskRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	reply := AnswerNow(r.Context(), requestData.Question, sessionOrGuest(requestData.SessionID))
	writeJsonResponse(w, http.StatusOK, api.AnswerResponse{
		Question: requestData.Question,
		Answer:   reply.Text,
		Outcome:  string(reply.Outcome),
		Sources:  reply.Sources,
		TicketId: reply.TicketId,
	})
}

// HelpQueueHandler godoc
// @Summary      Queue a question given in the path
// @Tags         Help
// @Produce      json
// @Param        question    path   string  true   "The question"
// @Param        session_id  query  string  false  "Session id, guest when empty"
// @Success      202  {object}  api.QueuedQuestionResponse
// @Failure      400  {object}  api.JobResponse
// @Router       /help/get/{question} [get]
func HelpQueueHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r) {
		return
	}
	question, ok := pathQuestion(w, r)
	if !ok {
		return
	}
	id := queueQuestion(r, question, sessionOrGuest(r.URL.Query().Get("session_id")))
	writeJsonResponse(w, http.StatusAccepted, api.QueuedQuestionResponse{Status: "queued", Question: question, Id: id})
}

// HelpAnswerHandler godoc
// @Summary      Answer a question given in the path
// @Tags         Help
// @Produce      json
// @Param        question    path   string  true   "The question"
// @Param        session_id  query  string  false  "Session id, guest when empty"
// @Success      200  {object}  api.HelpAnswerResponse
// @Failure      400  {object}  api.JobResponse
// @Router       /help/answer/{question} [get]
func HelpAnswerHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r) {
		return
	}
	question, ok := pathQuestion(w, r)
	if !ok {
		return
	}
	reply := AnswerNow(r.Context(), question, sessionOrGuest(r.URL.Query().Get("session_id")))
	writeJsonResponse(w, http.StatusOK, api.HelpAnswerResponse{Status: "success", Question: question, Answer: reply.Text})
}

// GetTicketHandler godoc
// @Summary      Get a support ticket
// @Tags         Tickets
// @Produce      json
// @Param        id   path      string  true  "Ticket ID"
// @Success      200  {object}  api.TicketResponse
// @Failure      404  {object}  api.JobResponse  "Ticket not found"
// @Router       /ticket/{id} [get]
func GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	ticket, found := GetTicket(r.Context(), id)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, id, "Ticket not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToTicketResponse(ticket))
}

// GetSessionHandler godoc
// @Summary      Get the ticket dialogue state of a session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.SessionResponse
// @Failure      404  {object}  api.JobResponse  "Session not found"
// @Router       /session/{id} [get]
func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	state, found := GetSession(r.Context(), id)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, id, "Session not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(state))
}

// GetHistoryHandler godoc
// @Summary      Get the last exchanges of a session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.HistoryResponse
// @Failure      500  {object}  api.JobResponse
// @Router       /history/{id} [get]
func GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	history, err := GetHistory(r.Context(), id)
	if err != nil {
		logRH.WithTrace(r.Context()).Error("Reading history failed", "session", id, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, id, "Could not read history")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToHistoryResponse(id, history))
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the request body", "error", err)
		}
	}(r.Body)

	body := http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		logRH.WithTrace(r.Context()).Warn("Bad request body", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return false
	}
	if err := ValidateRequest(target); err != nil {
		logRH.WithTrace(r.Context()).Warn("Request failed validation", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return false
	}
	return true
}

func pathQuestion(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := utils.GetChiURLParam(r, "question")
	question, err := url.PathUnescape(raw)
	if err != nil {
		question = raw
	}
	question = strings.TrimSpace(question)
	if question == "" || len(question) > config.MaxQuestionLength {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return "", false
	}
	return question, true
}
