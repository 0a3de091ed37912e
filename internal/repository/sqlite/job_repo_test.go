package sqlite_test

import (
	"context"
	"testing"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/sqlite"
	"job-tracker-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *sqlite.JobRepository {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewJobRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func newJob(id, owner string, created time.Time) *domain.Job {
	return &domain.Job{
		ID:        id,
		Owner:     owner,
		Title:     "Engineer " + id,
		Company:   "Acme",
		Status:    domain.StatusWishlist,
		CreatedAt: created,
	}
}

func TestJobRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	deadline := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	portal := domain.PortalLinkedIn
	link := "https://example.org/status"
	first := newJob("a", "owner-1", base)
	first.Deadline = &deadline
	first.Portal = &portal
	first.StatusLink = &link

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, newJob("b", "owner-1", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newJob("c", "owner-2", base.Add(2*time.Hour))))

	jobs, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "b", jobs[0].ID, "newest first")
	assert.Equal(t, "a", jobs[1].ID)

	got := jobs[1]
	require.NotNil(t, got.Deadline)
	assert.True(t, deadline.Equal(*got.Deadline))
	assert.Nil(t, got.AppliedOn)
	require.NotNil(t, got.Portal)
	assert.Equal(t, domain.PortalLinkedIn, *got.Portal)
	require.NotNil(t, got.StatusLink)
	assert.Equal(t, link, *got.StatusLink)
	assert.True(t, base.Equal(got.CreatedAt))

	empty, err := repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestJobRepository_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.Create(ctx, newJob("a", "owner-1", time.Now())))

	t.Run("Get by another owner is not found", func(t *testing.T) {
		_, err := repo.GetByIDAndOwner(ctx, "a", "owner-2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Update by another owner is not found and leaves the row", func(t *testing.T) {
		hijack := newJob("a", "owner-2", time.Now())
		hijack.Title = "Hijacked"
		assert.ErrorIs(t, repo.UpdateByIDAndOwner(ctx, hijack), domain.ErrNotFound)

		job, err := repo.GetByIDAndOwner(ctx, "a", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "Engineer a", job.Title)
	})

	t.Run("Delete by another owner is not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteByIDAndOwner(ctx, "a", "owner-2"), domain.ErrNotFound)
		_, err := repo.GetByIDAndOwner(ctx, "a", "owner-1")
		assert.NoError(t, err)
	})
}

func TestJobRepository_UpdateReplacesFields(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	job := newJob("a", "owner-1", time.Now())
	portal := domain.PortalIndeed
	job.Portal = &portal
	require.NoError(t, repo.Create(ctx, job))

	applied := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	job.Title = "Staff Engineer"
	job.Status = domain.StatusApplied
	job.AppliedOn = &applied
	job.Portal = nil
	require.NoError(t, repo.UpdateByIDAndOwner(ctx, job))

	got, err := repo.GetByIDAndOwner(ctx, "a", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.Title)
	assert.Equal(t, domain.StatusApplied, got.Status)
	require.NotNil(t, got.AppliedOn)
	assert.Equal(t, "2024-05-20", got.AppliedOn.Format("2006-01-02"))
	assert.Nil(t, got.Portal)
}

func TestJobRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.Create(ctx, newJob("a", "owner-1", time.Now())))

	require.NoError(t, repo.DeleteByIDAndOwner(ctx, "a", "owner-1"))
	assert.ErrorIs(t, repo.DeleteByIDAndOwner(ctx, "a", "owner-1"), domain.ErrNotFound)
}

func TestJobRepository_ListByIDsAndOwner(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	base := time.Now()
	require.NoError(t, repo.Create(ctx, newJob("a", "owner-1", base)))
	require.NoError(t, repo.Create(ctx, newJob("b", "owner-1", base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, newJob("c", "owner-2", base)))

	jobs, err := repo.ListByIDsAndOwner(ctx, "owner-1", []string{"a", "c"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "a", jobs[0].ID)

	none, err := repo.ListByIDsAndOwner(ctx, "owner-1", nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
