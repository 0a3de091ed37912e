package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listIDs(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func sampleJobs() []domain.Job {
	return []domain.Job{
		{ID: "a", Title: "Dev", Company: "Acme", Status: domain.StatusApplied},
		{ID: "b", Title: "Ops", Company: "Globex", Status: domain.StatusWishlist},
		{ID: "c", Title: "Dev Lead", Company: "Initech", Status: domain.StatusApplied},
	}
}

func TestJobList_RecomputesOnEveryChange(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	list := usecase.NewJobList(now)
	assert.Empty(t, list.Filtered())

	list.SetRecords(sampleJobs())
	assert.Equal(t, []string{"a", "b", "c"}, listIDs(list.Filtered()))

	list.SetFilter(domain.JobFilter{Query: "dev"})
	assert.Equal(t, []string{"a", "c"}, listIDs(list.Filtered()))

	list.SetRecords(append(sampleJobs(), domain.Job{ID: "d", Title: "DevRel", Company: "Hooli", Status: domain.StatusOffer}))
	assert.Equal(t, []string{"a", "c", "d"}, listIDs(list.Filtered()))

	list.ClearFilters()
	assert.Equal(t, []string{"a", "b", "c", "d"}, listIDs(list.Filtered()))
	assert.True(t, list.Filter().IsZero())
}

func TestJobList_RemoveAndRestore(t *testing.T) {
	list := usecase.NewJobList(nil)
	list.SetRecords(sampleJobs())
	list.SetFilter(domain.JobFilter{Status: domain.StatusApplied})

	job, idx, ok := list.Remove("a")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []string{"c"}, listIDs(list.Filtered()))

	list.Restore(job, idx)
	assert.Equal(t, []string{"a", "b", "c"}, listIDs(list.Records()))
	assert.Equal(t, []string{"a", "c"}, listIDs(list.Filtered()))

	_, _, ok = list.Remove("missing")
	assert.False(t, ok)
}

func TestJobList_DeleteRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	list := usecase.NewJobList(nil)
	list.SetRecords(sampleJobs())

	var sawOptimistic []string
	err := list.Delete(ctx, "b", func(ctx context.Context, id string) error {
		sawOptimistic = listIDs(list.Records())
		return errors.New("store unavailable")
	})

	require.Error(t, err)
	assert.Equal(t, []string{"a", "c"}, sawOptimistic, "removed before persisting")
	assert.Equal(t, []string{"a", "b", "c"}, listIDs(list.Records()), "restored at original position")
}

func TestJobList_DeleteKeepsRemovalOnSuccess(t *testing.T) {
	list := usecase.NewJobList(nil)
	list.SetRecords(sampleJobs())

	err := list.Delete(context.Background(), "c", func(context.Context, string) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, listIDs(list.Records()))

	err = list.Delete(context.Background(), "c", func(context.Context, string) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobList_SetRecordsCopies(t *testing.T) {
	jobs := sampleJobs()
	list := usecase.NewJobList(nil)
	list.SetRecords(jobs)
	list.Remove("a")
	assert.Equal(t, "a", jobs[0].ID)
}
