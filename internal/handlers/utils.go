package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akolanti/SupportBot/internal/adapter"
	"github.com/akolanti/SupportBot/internal/adapter/utils"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

// validateContext drops requests whose client already went away.
func validateContext(r *http.Request) bool {
	ctx := r.Context()
	if ctx.Err() != nil {
		logRH.WithTrace(ctx).Warn("context error", "error", ctx.Err(), "remote", r.RemoteAddr)
		return false
	}
	if handlerInstance == nil {
		logRH.Error("Request before the job handler was initialised")
		return false
	}
	return true
}

func traceId(ctx context.Context) string {
	id, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return id
}

func sessionOrGuest(id string) string {
	if id == "" {
		return config.GuestSessionToken
	}
	return id
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func queueQuestion(request *http.Request, message string, sessionId string) string {
	newJob := newJobData{
		id:        utils.GetNewUUID(),
		sessionId: sessionId,
		message:   message,
		traceId:   traceId(request.Context()),
	}
	CreateNewJob(newJob)
	return newJob.id
}

func processNewJobData(request *http.Request, w http.ResponseWriter, message string, sessionId string) {
	sessionId = sessionOrGuest(sessionId)
	id := queueQuestion(request, message, sessionId)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(id, sessionId))
}
