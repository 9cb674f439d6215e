package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/SupportBot/internal/chatbot"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/akolanti/SupportBot/internal/job"
	"github.com/akolanti/SupportBot/internal/metrics"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	"github.com/go-playground/validator/v10"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           = logger_i.NewLogger("JobHandler")
	validate        = validator.New(validator.WithRequiredStructEnabled())
)

type JobHandler struct {
	service *job.Service
	chatbot chatbot.Service
}

func InitJobHandler(jobService *job.Service, chatbotService chatbot.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, chatbot: chatbotService}
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(newJob newJobData) {
	logJH.Info("To create new job", "traceId", newJob.traceId, "jobId", newJob.id, "session", newJob.sessionId)
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(traceContext(traceId), id)
	}
	return result, false
}

func GetTicket(ctx context.Context, id string) (sessionModel.Ticket, bool) {
	if handlerInstance == nil || handlerInstance.service.TicketStore == nil {
		return sessionModel.Ticket{}, false
	}
	return handlerInstance.service.TicketStore.GetTicket(ctx, id)
}

func GetSession(ctx context.Context, token string) (sessionModel.SessionState, bool) {
	if handlerInstance == nil || handlerInstance.service.SessionStore == nil {
		return sessionModel.SessionState{}, false
	}
	return handlerInstance.service.SessionStore.GetSession(ctx, token)
}

func GetHistory(ctx context.Context, token string) ([]string, error) {
	if handlerInstance == nil || handlerInstance.service.MessageStore == nil {
		return []string{}, nil
	}
	return handlerInstance.service.MessageStore.GetMessageHistory(ctx, token)
}

// AnswerNow runs the composer on the request goroutine.
func AnswerNow(ctx context.Context, question string, sessionId string) chatbot.Reply {
	return handlerInstance.chatbot.Answer(ctx, question, sessionId)
}

// ValidateRequest checks the validate tags of any request struct.
func ValidateRequest(req any) error {
	if handlerInstance == nil {
		return errHandlerNotReady
	}
	return validate.Struct(req)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.SessionId = newJob.sessionId
	_job.JobPayload.Question = newJob.message
	_job.CurrentStep = jobModel.UserQueryInit

	// saved before queueing so the status route can see it right away
	if err := h.service.JobStore.SaveJob(traceContext(newJob.traceId), _job); err != nil {
		logJH.Error("Failed to save queued job", "jobId", _job.Id, "error", err)
	}

	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Debug("Created new job", "jobId", _job.Id)

	//a new worker is started every RequestsPerNewWorkerCount requests;
	//idle workers retire on their own so usually only one keeps running
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount()
		logJH.Debug("Signalling dispatcher", "requestCount", accurateCount)
		select {
		case h.service.DispatcherChannel <- true:
		default:
		}
	}
}

func traceContext(traceId string) context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
}
