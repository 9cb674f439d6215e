package worker

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/SupportBot/internal/config"
	jobmodel "github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/internal/metrics"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobExecutionTimeout)
	defer cancel()
	log := logger.WithTrace(ctx).With("jobId", job.Id)
	log.Debug("Processing job")

	job = saveJobState(ctx, log, job, jobmodel.JobStatusRunning)

	job.CurrentStep = jobmodel.RedisCall
	job = processQuery(ctx, log, job)
	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		saveJobState(ctx, log, job, jobmodel.JobStatusError)
		return
	}

	if err := _jobService.MessageStore.TrySaveChat(ctx, job.SessionId, job.JobPayload); err != nil {
		log.Error("Failed to save chat history", "err", err)
	}
	job = saveJobState(ctx, log, job, jobmodel.JobStatusComplete)
}

func removeWorker(group *sync.WaitGroup, reason string) {
	group.Done()
	metrics.DecrementActiveWorkerCount()
	logger.Info("Removed worker", "reason", reason, "workerCount", atomic.LoadInt64(&currentWorkerCount))
}

// processQuery never lets a panic in the answer path take the worker down.
func processQuery(ctx context.Context, log *logger_i.Logger, job jobmodel.Job) (result jobmodel.Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Answering job panicked", "panic", fmt.Sprint(r))
			job.Error = jobmodel.JobError{
				Code:    http.StatusInternalServerError,
				Message: "Internal Server Error",
				Retry:   true,
			}
			job.Status = jobmodel.JobStatusError
			job.CurrentStep = jobmodel.Error
			result = job
		}
	}()
	return _chatbotService.ProcessRequest(ctx, job)
}

func saveJobState(ctx context.Context, log *logger_i.Logger, job jobmodel.Job, jobStatus jobmodel.JobStatus) jobmodel.Job {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		log.Error("Failed to update job status", "err", err)
	}
	return job
}
