package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	SessionId string            `json:"session_id" example:"guest"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type AnswerResponse struct {
	Question string   `json:"question" example:"How do I withdraw my earnings?"`
	Answer   string   `json:"answer" example:"Open the wallet page and choose withdraw."`
	Outcome  string   `json:"outcome" example:"generated"`
	Sources  []string `json:"sources,omitempty"`
	TicketId string   `json:"ticket_id,omitempty"`
}

type Result struct {
	Status         string          `json:"status"`
	AnswerResponse *AnswerResponse `json:"answer_response,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
	SessionId string `json:"session_id"`
}

// QueuedQuestionResponse and HelpAnswerResponse keep the shape of the /help routes.
type QueuedQuestionResponse struct {
	Status   string `json:"status" example:"queued"`
	Question string `json:"question"`
	Id       string `json:"id"`
}

type HelpAnswerResponse struct {
	Status   string `json:"status" example:"success"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type TicketResponse struct {
	Id          string    `json:"id"`
	SessionId   string    `json:"session_id"`
	Category    string    `json:"category" example:"Refund Request"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionResponse struct {
	SessionId       string     `json:"session_id"`
	TicketStep      string     `json:"ticket_step" example:"subject"`
	TicketGenerated bool       `json:"ticket_generated"`
	TicketData      TicketData `json:"ticket_data"`
	LastTicketId    string     `json:"last_ticket_id,omitempty"`
}

type TicketData struct {
	Category    string `json:"category,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description,omitempty"`
}

type HistoryResponse struct {
	SessionId string           `json:"session_id"`
	Exchanges []AnswerResponse `json:"exchanges"`
}

// requests---------------------

type ChatRequest struct {
	Message   string `json:"message" validate:"required,max=2000"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}

type AskRequest struct {
	Question  string `json:"question" validate:"required,max=2000"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}
