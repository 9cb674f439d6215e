package store

import (
	"context"
	"time"

	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	"github.com/patrickmn/go-cache"
)

var inMemLogger = logger_i.NewLogger("InMem Store")

// InMemoryJobStore expires jobs after the same TTL as the redis job store.
type InMemoryJobStore struct {
	jobs *cache.Cache
}

func InitInMemoryJobStore() *InMemoryJobStore {
	return newInMemoryJobStore(config.RedisJobStoreTTL, time.Hour)
}

func newInMemoryJobStore(ttl time.Duration, cleanupInterval time.Duration) *InMemoryJobStore {
	return &InMemoryJobStore{jobs: cache.New(ttl, cleanupInterval)}
}

func (store *InMemoryJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	store.jobs.Set(job.Id, job, cache.DefaultExpiration)
	inMemLogger.WithTrace(ctx).Debug("Saved job to store", "jobId", job.Id, "status", job.Status)
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	x, found := store.jobs.Get(jobId)
	inMemLogger.WithTrace(ctx).Debug("Job lookup", "jobId", jobId, "found", found)
	if !found {
		return jobModel.Job{}, false
	}
	return x.(jobModel.Job), true
}

func (store *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	store.jobs.Delete(jobID)
}
