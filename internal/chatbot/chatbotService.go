package chatbot

import (
	"context"
	"time"

	"github.com/akolanti/SupportBot/internal/chatbot/intent"
	"github.com/akolanti/SupportBot/internal/chatbot/llm"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/commonModels"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/akolanti/SupportBot/internal/metrics"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

/*
Service follows the opaque interface pattern: the worker, the handlers and
the MCP tools only see the interface; the FAQ corpus, the model provider and
the stores stay inside the private struct and are injected by NewService.
*/

// Reply is one answer of the bot.
type Reply struct {
	Text     string
	Outcome  jobModel.Outcome
	Sources  []string
	TicketId string
}

type Service interface {
	// ProcessRequest answers the question carried by a queued job.
	ProcessRequest(ctx context.Context, job jobModel.Job) jobModel.Job
	// Answer is the synchronous path. It never fails: every problem becomes a reply.
	Answer(ctx context.Context, question string, sessionToken string) Reply
	// Respond returns only the reply text.
	Respond(ctx context.Context, question string, sessionToken string) string
}

type Options struct {
	PlatformName   string
	SupportContact string
	MatchLimit     int
	LLMTimeout     time.Duration
}

func DefaultOptions() Options {
	return Options{
		PlatformName:   config.PlatformName,
		SupportContact: config.SupportContact,
		MatchLimit:     config.FaqMatchLimit,
		LLMTimeout:     config.LLMTimeout,
	}
}

type service struct {
	entries  []commonModels.FaqEntry
	provider llm.Provider
	sessions sessionModel.SessionStore
	tickets  sessionModel.TicketStore
	opts     Options
	logger   *logger_i.Logger
}

func NewService(entries []commonModels.FaqEntry, provider llm.Provider, sessions sessionModel.SessionStore,
	tickets sessionModel.TicketStore, opts Options) Service {
	if opts.MatchLimit <= 0 {
		opts.MatchLimit = config.FaqMatchLimit
	}
	if opts.LLMTimeout <= 0 {
		opts.LLMTimeout = config.LLMTimeout
	}
	return &service{
		entries:  entries,
		provider: provider,
		sessions: sessions,
		tickets:  tickets,
		opts:     opts,
		logger:   logger_i.NewLogger("Chatbot Service"),
	}
}

func (s *service) ProcessRequest(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.WithTrace(ctx).With("JobId", job.Id)
	start := time.Now()

	if job.SessionId == "" {
		job.SessionId = config.GuestSessionToken
	}
	job.CurrentStep = jobModel.UserQueryInit
	job.JobPayload.Sources = nil
	job.JobPayload.TicketId = ""

	// Ticket dialogue first: it owns every turn while open.
	reply, handled := s.executeSessionStep(ctx, log, &job)
	if !handled {
		reply, handled = s.executeIntentStep(log, &job)
	}
	if !handled {
		reply = s.executeAnswerStep(ctx, log, &job)
	}

	metrics.CaptureOutcome(string(reply.Outcome))
	metrics.CaptureExecutionMetrics("compose_"+string(reply.Outcome), time.Since(start))
	log.Info("Question answered", "outcome", reply.Outcome, "duration", time.Since(start))
	return returnOutput(job, reply)
}

func (s *service) Answer(ctx context.Context, question string, sessionToken string) Reply {
	job := s.ProcessRequest(ctx, jobModel.Job{
		SessionId:  sessionToken,
		JobPayload: jobModel.JobPayload{Question: question},
	})
	return Reply{
		Text:     job.JobPayload.Answer,
		Outcome:  job.JobPayload.Outcome,
		Sources:  job.JobPayload.Sources,
		TicketId: job.JobPayload.TicketId,
	}
}

func (s *service) Respond(ctx context.Context, question string, sessionToken string) string {
	return s.Answer(ctx, question, sessionToken).Text
}

func (s *service) executeIntentStep(log *logger_i.Logger, job *jobModel.Job) (Reply, bool) {
	*job = logOutput(*job, jobModel.IntentCall, log)

	switch intent.Classify(job.JobPayload.Question) {
	case intent.Greeting:
		return Reply{Text: GreetingReply, Outcome: jobModel.OutcomeGreeting}, true
	case intent.Acknowledgment:
		return Reply{Text: AcknowledgmentReply, Outcome: jobModel.OutcomeAcknowledgment}, true
	}
	return Reply{}, false
}
