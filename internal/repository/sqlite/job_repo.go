package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"job-tracker-backend/internal/domain"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
	jobColumns      = `id, owner, title, company, status, deadline, applied_on, portal, status_link, created_at`
)

// JobRepository stores account jobs in SQLite for local development.
// Dates are kept as text so the file stays readable with the sqlite3 shell.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ domain.JobRepository = (*JobRepository)(nil)

func (r *JobRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	owner TEXT NOT NULL,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Wishlist',
	deadline TEXT NULL,
	applied_on TEXT NULL,
	portal TEXT NULL,
	status_link TEXT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_owner_created_at ON jobs (owner, created_at DESC);
`)
	return err
}

func (r *JobRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE owner = ? ORDER BY created_at DESC, rowid DESC`, owner)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListByIDsAndOwner(ctx context.Context, owner string, ids []string) ([]domain.Job, error) {
	if len(ids) == 0 {
		return []domain.Job{}, nil
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, owner)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE owner = ? AND id IN (`+placeholders+`) ORDER BY created_at DESC, rowid DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *JobRepository) GetByIDAndOwner(ctx context.Context, id, owner string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ? AND owner = ?`, id, owner)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return job, err
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if job.Owner == "" {
		return errors.New("owner is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, owner, title, company, status, deadline, applied_on, portal, status_link, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Owner, job.Title, job.Company, string(job.Status),
		formatDate(job.Deadline), formatDate(job.AppliedOn), portalValue(job.Portal), nullString(job.StatusLink),
		job.CreatedAt.UTC().Format(timestampLayout),
	)
	return err
}

func (r *JobRepository) UpdateByIDAndOwner(ctx context.Context, job *domain.Job) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE jobs
		SET title = ?, company = ?, status = ?, deadline = ?, applied_on = ?, portal = ?, status_link = ?
		WHERE id = ? AND owner = ?`,
		job.Title, job.Company, string(job.Status),
		formatDate(job.Deadline), formatDate(job.AppliedOn), portalValue(job.Portal), nullString(job.StatusLink),
		job.ID, job.Owner,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *JobRepository) DeleteByIDAndOwner(ctx context.Context, id, owner string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job                         domain.Job
		status, createdAt           string
		deadline, appliedOn, portal sql.NullString
		statusLink                  sql.NullString
	)
	if err := row.Scan(&job.ID, &job.Owner, &job.Title, &job.Company, &status,
		&deadline, &appliedOn, &portal, &statusLink, &createdAt); err != nil {
		return nil, err
	}

	job.Status = domain.Status(status)

	var err error
	if job.Deadline, err = parseDate(deadline); err != nil {
		return nil, err
	}
	if job.AppliedOn, err = parseDate(appliedOn); err != nil {
		return nil, err
	}
	if portal.Valid {
		p := domain.Portal(portal.String)
		job.Portal = &p
	}
	if statusLink.Valid {
		s := statusLink.String
		job.StatusLink = &s
	}
	if job.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, err
	}
	return &job, nil
}

func collectJobs(rows *sql.Rows) ([]domain.Job, error) {
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

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func portalValue(p *domain.Portal) any {
	if p == nil {
		return nil
	}
	return string(*p)
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
