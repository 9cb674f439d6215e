package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

type Outcome string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	UserQueryInit InternalStatus = "Init"
	SessionCall   InternalStatus = "Session"
	TicketFlow    InternalStatus = "TicketFlow"
	IntentCall    InternalStatus = "Intent"
	ScoringCall   InternalStatus = "FaqScoring"
	LLMCall       InternalStatus = "LLM"
	RedisCall     InternalStatus = "Redis"
	Error         InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	// how a question was answered
	OutcomeTicket         Outcome = "ticket"
	OutcomeGreeting       Outcome = "greeting"
	OutcomeAcknowledgment Outcome = "acknowledgment"
	OutcomeNoMatch        Outcome = "no_match"
	OutcomeGenerated      Outcome = "generated"
	OutcomeUnreachable    Outcome = "llm_unreachable"
	OutcomeEmpty          Outcome = "llm_empty"
	OutcomeFailed         Outcome = "llm_failed"
	OutcomeSessionError   Outcome = "session_error"
)

type Job struct {
	Id          string         `json:"id"`
	SessionId   string         `json:"session_id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Question string   `json:"question,omitempty"`
	Answer   string   `json:"answer,omitempty"`
	Outcome  Outcome  `json:"outcome,omitempty"`
	Sources  []string `json:"sources,omitempty"`
	TicketId string   `json:"ticket_id,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// MessageStore keeps the question/answer exchanges of each session.
type MessageStore interface {
	TrySaveChat(ctx context.Context, sessionId string, payload JobPayload) error
	GetMessageHistory(ctx context.Context, sessionId string) ([]string, error)
}
