package adapter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/akolanti/SupportBot/internal/api"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
)

func ToInitJobResponse(id string, sessionId string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
		SessionId: sessionId,
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:         string(job.Status),
		AnswerResponse: ToAnswerResponse(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		SessionId: job.SessionId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToAnswerResponse(payload jobModel.JobPayload) *api.AnswerResponse {
	if payload.Answer == "" && len(payload.Sources) == 0 {
		return nil
	}

	return &api.AnswerResponse{
		Question: payload.Question,
		Answer:   payload.Answer,
		Outcome:  string(payload.Outcome),
		Sources:  payload.Sources,
		TicketId: payload.TicketId,
	}
}

func ToTicketResponse(t sessionModel.Ticket) api.TicketResponse {
	return api.TicketResponse{
		Id:          t.Id,
		SessionId:   t.SessionToken,
		Category:    t.Category,
		Subject:     t.Subject,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func ToSessionResponse(s sessionModel.SessionState) api.SessionResponse {
	step := string(s.TicketStep)
	if step == "" {
		step = "none"
	}
	return api.SessionResponse{
		SessionId:       s.Token,
		TicketStep:      step,
		TicketGenerated: s.TicketGenerated,
		TicketData: api.TicketData{
			Category:    s.TicketData.Category,
			Subject:     s.TicketData.Subject,
			Description: s.TicketData.Description,
		},
		LastTicketId: s.LastTicketId,
	}
}

// ToHistoryResponse decodes the stored exchanges; entries that fail to decode are skipped.
func ToHistoryResponse(sessionId string, history []string) api.HistoryResponse {
	res := api.HistoryResponse{SessionId: sessionId, Exchanges: make([]api.AnswerResponse, 0, len(history))}
	for _, raw := range history {
		var payload jobModel.JobPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			continue
		}
		if a := ToAnswerResponse(payload); a != nil {
			res.Exchanges = append(res.Exchanges, *a)
		}
	}
	return res
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		SessionId: "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status:         string(api.JobStatusError),
			AnswerResponse: ToAnswerResponse(jobModel.JobPayload{}),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
