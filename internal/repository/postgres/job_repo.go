package postgres

import (
	"context"
	"errors"
	"fmt"

	"job-tracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `id, owner, title, company, status, deadline, applied_on, portal, status_link, created_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// withOwner runs fn in a transaction whose row-level security context is
// owner. The setting is transaction-local so pooled connections never leak it.
func (r *jobRepo) withOwner(ctx context.Context, owner string, fn func(tx pgx.Tx) error) error {
	if owner == "" {
		return errors.New("owner is required")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT set_config('app.current_owner', $1, true)`, owner); err != nil {
		return fmt.Errorf("failed to set owner context: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *jobRepo) ListByOwner(ctx context.Context, owner string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE owner = $1 ORDER BY created_at DESC`

	var jobs []domain.Job
	err := r.withOwner(ctx, owner, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, owner)
		if err != nil {
			return err
		}
		jobs, err = collectJobs(rows)
		return err
	})
	return jobs, err
}

func (r *jobRepo) ListByIDsAndOwner(ctx context.Context, owner string, ids []string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE owner = $1 AND id = ANY($2::text[]) ORDER BY created_at DESC`

	var jobs []domain.Job
	err := r.withOwner(ctx, owner, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, owner, pq.Array(ids))
		if err != nil {
			return err
		}
		jobs, err = collectJobs(rows)
		return err
	})
	return jobs, err
}

func (r *jobRepo) GetByIDAndOwner(ctx context.Context, id, owner string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND owner = $2`

	var job *domain.Job
	err := r.withOwner(ctx, owner, func(tx pgx.Tx) error {
		var err error
		job, err = scanJob(tx.QueryRow(ctx, query, id, owner))
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (id, owner, title, company, status, deadline, applied_on, portal, status_link, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	return r.withOwner(ctx, job.Owner, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			job.ID, job.Owner, job.Title, job.Company, string(job.Status),
			job.Deadline, job.AppliedOn, portalValue(job.Portal), job.StatusLink, job.CreatedAt,
		)
		return err
	})
}

func (r *jobRepo) UpdateByIDAndOwner(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $3,
		company = $4,
		status = $5,
		deadline = $6,
		applied_on = $7,
		portal = $8,
		status_link = $9
	WHERE id = $1 AND owner = $2`

	return r.withOwner(ctx, job.Owner, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, query,
			job.ID, job.Owner, job.Title, job.Company, string(job.Status),
			job.Deadline, job.AppliedOn, portalValue(job.Portal), job.StatusLink,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *jobRepo) DeleteByIDAndOwner(ctx context.Context, id, owner string) error {
	return r.withOwner(ctx, owner, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND owner = $2`, id, owner)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job    domain.Job
		status string
		portal *string
	)
	err := row.Scan(
		&job.ID, &job.Owner, &job.Title, &job.Company, &status,
		&job.Deadline, &job.AppliedOn, &portal, &job.StatusLink, &job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Status = domain.Status(status)
	if portal != nil {
		p := domain.Portal(*portal)
		job.Portal = &p
	}
	return &job, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func portalValue(p *domain.Portal) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
