package guest_test

import (
	"context"
	"testing"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/guest"
	"job-tracker-backend/pkg/ephemeral"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() (*guest.JobStore, *ephemeral.MemoryStore) {
	mem := ephemeral.NewMemoryStore()
	return guest.NewJobStore(mem, time.Hour), mem
}

func TestGuestJobStore_CreatePrependsNewest(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()

	for _, id := range []string{"one", "two", "three"} {
		require.NoError(t, store.Create(ctx, "g1", &domain.Job{ID: id, Title: id, Company: "Acme", Status: domain.StatusWishlist}))
	}

	jobs, err := store.List(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "three", jobs[0].ID)
	assert.Equal(t, "one", jobs[2].ID)
}

func TestGuestJobStore_RoundTripsOptionalFields(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()

	applied := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	portal := domain.PortalNaukri
	link := "https://example.org/track"
	created := time.Date(2024, 6, 10, 8, 15, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, "g1", &domain.Job{
		ID: "a", Title: "Analyst", Company: "Globex", Status: domain.StatusApplied,
		AppliedOn: &applied, Portal: &portal, StatusLink: &link, CreatedAt: created,
	}))

	job, err := store.Get(ctx, "g1", "a")
	require.NoError(t, err)
	require.NotNil(t, job.AppliedOn)
	assert.True(t, applied.Equal(*job.AppliedOn))
	assert.Nil(t, job.Deadline)
	require.NotNil(t, job.Portal)
	assert.Equal(t, domain.PortalNaukri, *job.Portal)
	assert.Equal(t, link, *job.StatusLink)
	assert.True(t, created.Equal(job.CreatedAt))
}

func TestGuestJobStore_MalformedContentReadsEmpty(t *testing.T) {
	ctx := context.Background()

	blobs := map[string]string{
		"Not JSON":         `{{{`,
		"Object not array": `{"id":"a"}`,
		"Unknown status":   `[{"id":"a","title":"t","company":"c","status":"Ghosted"}]`,
		"Missing title":    `[{"id":"a","company":"c","status":"Applied"}]`,
		"Bad date format":  `[{"id":"a","title":"t","company":"c","status":"Applied","deadline":"June 1"}]`,
		"Unknown portal":   `[{"id":"a","title":"t","company":"c","status":"Applied","portal":"Monster"}]`,
	}

	for name, blob := range blobs {
		t.Run(name, func(t *testing.T) {
			store, mem := newStore()
			require.NoError(t, mem.Set(ctx, guest.Key("g1"), []byte(blob), 0))

			jobs, err := store.List(ctx, "g1")
			require.NoError(t, err)
			assert.Empty(t, jobs)
		})
	}
}

func TestGuestJobStore_ReadsVersionOneRecords(t *testing.T) {
	ctx := context.Background()
	store, mem := newStore()
	blob := `[{"id":"a","title":"Dev","company":"Acme","status":"Interview","deadline":"2024-07-01"}]`
	require.NoError(t, mem.Set(ctx, guest.Key("g1"), []byte(blob), 0))

	jobs, err := store.List(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.StatusInterview, jobs[0].Status)
	require.NotNil(t, jobs[0].Deadline)
	assert.Equal(t, "2024-07-01", jobs[0].Deadline.Format("2006-01-02"))
	assert.Nil(t, jobs[0].AppliedOn)
}

func TestGuestJobStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, "g1", &domain.Job{ID: "a", Title: "Dev", Company: "Acme", Status: domain.StatusWishlist, CreatedAt: created}))
	require.NoError(t, store.Create(ctx, "g1", &domain.Job{ID: "b", Title: "Ops", Company: "Acme", Status: domain.StatusWishlist}))

	require.NoError(t, store.Update(ctx, "g1", &domain.Job{ID: "a", Title: "Senior Dev", Company: "Acme", Status: domain.StatusOffer}))
	job, err := store.Get(ctx, "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, "Senior Dev", job.Title)
	assert.Equal(t, domain.StatusOffer, job.Status)
	assert.True(t, created.Equal(job.CreatedAt), "created_at is kept")

	assert.ErrorIs(t, store.Update(ctx, "g1", &domain.Job{ID: "zzz", Title: "x", Company: "y", Status: domain.StatusWishlist}), domain.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "g1", "b"))
	assert.ErrorIs(t, store.Delete(ctx, "g1", "b"), domain.ErrNotFound)

	jobs, err := store.List(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "a", jobs[0].ID)
}

func TestGuestJobStore_IsolatedPerGuest(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()
	require.NoError(t, store.Create(ctx, "g1", &domain.Job{ID: "a", Title: "Dev", Company: "Acme", Status: domain.StatusWishlist}))

	jobs, err := store.List(ctx, "g2")
	require.NoError(t, err)
	assert.Empty(t, jobs)

	_, err = store.Get(ctx, "g2", "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Clear(ctx, "g1"))
	jobs, err = store.List(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
