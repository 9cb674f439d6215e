package store

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/SupportBot/internal/domain/jobModel"
)

func TestInMemoryJobStore_Expires(t *testing.T) {
	jobStore := newInMemoryJobStore(20*time.Millisecond, time.Hour)
	ctx := context.Background()

	_ = jobStore.SaveJob(ctx, jobModel.Job{Id: "old"})
	if _, found := jobStore.GetJob(ctx, "old"); !found {
		t.Fatal("job missing right after save")
	}
	time.Sleep(40 * time.Millisecond)
	if _, found := jobStore.GetJob(ctx, "old"); found {
		t.Error("job should have expired")
	}
}
