package chatbot

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/SupportBot/internal/adapter/utils"
	"github.com/akolanti/SupportBot/internal/chatbot/intent"
	"github.com/akolanti/SupportBot/internal/chatbot/llm"
	"github.com/akolanti/SupportBot/internal/chatbot/ticket"
	"github.com/akolanti/SupportBot/internal/domain/commonModels"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/akolanti/SupportBot/internal/faq/scorer"
	"github.com/akolanti/SupportBot/internal/metrics"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

var errTicketNotSaved = errors.New("ticket could not be saved")

func returnOutput(job jobModel.Job, reply Reply) jobModel.Job {
	job.JobPayload.Answer = reply.Text
	job.JobPayload.Outcome = reply.Outcome
	job.JobPayload.Sources = reply.Sources
	job.JobPayload.TicketId = reply.TicketId
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessRequest", "Current Status", job.CurrentStep)
	return job
}

// executeSessionStep runs the ticket dialogue under the session lock. It
// reports handled=false when the session is idle and the input is not the
// ticket command; the session is still created and its expiry refreshed.
func (s *service) executeSessionStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) (Reply, bool) {
	*job = logOutput(*job, jobModel.SessionCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("session", time.Since(start)) }()

	var reply Reply
	handled := false
	_, err := s.sessions.UpdateSession(ctx, job.SessionId, func(state *sessionModel.SessionState) error {
		switch {
		case state.InTicketFlow():
			*job = logOutput(*job, jobModel.TicketFlow, log)
			handled = true
			return s.advanceTicket(ctx, log, state, job, &reply)

		case intent.IsTicketCommand(job.JobPayload.Question):
			*job = logOutput(*job, jobModel.TicketFlow, log)
			handled = true
			reply = Reply{Text: ticket.Start(state), Outcome: jobModel.OutcomeTicket}
		}
		return nil
	})

	if errors.Is(err, errTicketNotSaved) {
		return Reply{Text: s.ticketNotSavedReply(), Outcome: jobModel.OutcomeSessionError}, true
	}
	if err != nil {
		log.Error("Session update failed", "session", job.SessionId, "error", err)
		return Reply{Text: s.serviceErrorReply(), Outcome: jobModel.OutcomeSessionError}, true
	}
	return reply, handled
}

// advanceTicket feeds one turn to the dialogue. The finished ticket is saved
// before the state moves to idle; if saving fails the turn is rejected and the
// description can be sent again.
func (s *service) advanceTicket(ctx context.Context, log *logger_i.Logger, state *sessionModel.SessionState,
	job *jobModel.Job, reply *Reply) error {
	text, completed := ticket.Advance(state, job.JobPayload.Question)
	*reply = Reply{Text: text, Outcome: jobModel.OutcomeTicket}
	if !completed {
		return nil
	}

	record := sessionModel.Ticket{
		Id:           utils.GetNewUUID(),
		SessionToken: state.Token,
		Category:     state.TicketData.Category,
		Subject:      state.TicketData.Subject,
		Description:  state.TicketData.Description,
		CreatedAt:    time.Now().UTC(),
	}
	if s.tickets != nil {
		if err := s.tickets.SaveTicket(ctx, record); err != nil {
			log.Error("Saving ticket failed", "error", err)
			return errTicketNotSaved
		}
	}
	state.LastTicketId = record.Id
	reply.Text = ticketCreatedReply(text, record.Id)
	reply.TicketId = record.Id
	metrics.IncrementTicketsGenerated()
	log.Info("Ticket generated", "ticketId", record.Id, "category", record.Category)
	return nil
}

func (s *service) executeScoringStep(log *logger_i.Logger, job *jobModel.Job) []commonModels.ScoredMatch {
	*job = logOutput(*job, jobModel.ScoringCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("faq_scoring", time.Since(start)) }()

	return scorer.Rank(job.JobPayload.Question, s.entries, s.opts.MatchLimit)
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, docs []string) (string, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	genCtx, cancel := context.WithTimeout(ctx, s.opts.LLMTimeout)
	defer cancel()

	return llm.Collect(s.provider.Generate(genCtx, BuildPrompt(s.opts.PlatformName, docs, job.JobPayload.Question)))
}

// executeAnswerStep is the FAQ path: score, then ground the model on the matches.
func (s *service) executeAnswerStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) Reply {
	matches := s.executeScoringStep(log, job)
	if len(matches) == 0 {
		return Reply{Text: s.noMatchReply(), Outcome: jobModel.OutcomeNoMatch}
	}

	docs := make([]string, len(matches))
	sources := make([]string, len(matches))
	for i, m := range matches {
		docs[i] = m.Entry.Document()
		sources[i] = m.Entry.Label
	}

	if s.provider == nil {
		log.Error("No generation provider configured")
		return Reply{Text: s.unreachableReply(), Outcome: jobModel.OutcomeUnreachable}
	}

	answer, err := s.executeLLMStep(ctx, log, job, docs)
	switch {
	case err == nil:
		return Reply{Text: answer, Outcome: jobModel.OutcomeGenerated, Sources: sources}
	case errors.Is(err, llm.ErrUnreachable):
		log.Warn("Generation service unreachable", "provider", s.provider.Name(), "error", err)
		return Reply{Text: s.unreachableReply(), Outcome: jobModel.OutcomeUnreachable}
	case errors.Is(err, llm.ErrEmptyResponse):
		log.Warn("Generation service returned nothing", "provider", s.provider.Name())
		return Reply{Text: s.emptyReply(), Outcome: jobModel.OutcomeEmpty}
	default:
		log.Error("Generation failed", "provider", s.provider.Name(), "error", err)
		return Reply{Text: s.serviceErrorReply(), Outcome: jobModel.OutcomeFailed}
	}
}
