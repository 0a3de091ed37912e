// Package guest keeps a guest's job records as a single JSON array in the
// ephemeral store. Every mutation rewrites the whole array.
package guest

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/ephemeral"
	"job-tracker-backend/pkg/logger"
)

const (
	dateLayout = "2006-01-02"
	keyPrefix  = "guestJobs:"
)

// record is the stored shape. Dates are calendar dates.
type record struct {
	SchemaVersion int     `json:"schema_version"`
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Company       string  `json:"company"`
	Status        string  `json:"status"`
	Deadline      *string `json:"deadline,omitempty"`
	AppliedOn     *string `json:"applied_on,omitempty"`
	Portal        *string `json:"portal,omitempty"`
	StatusLink    *string `json:"status_link,omitempty"`
	CreatedAt     *string `json:"created_at,omitempty"`
}

type JobStore struct {
	store ephemeral.Store
	ttl   time.Duration
}

func NewJobStore(store ephemeral.Store, ttl time.Duration) *JobStore {
	return &JobStore{store: store, ttl: ttl}
}

var _ domain.GuestJobRepository = (*JobStore)(nil)

func Key(guestID string) string { return keyPrefix + guestID }

// List never fails on bad content: an absent, unparseable or invalid blob
// reads as an empty set. Only store errors are returned.
func (s *JobStore) List(ctx context.Context, guestID string) ([]domain.Job, error) {
	blob, err := s.store.Get(ctx, Key(guestID))
	if errors.Is(err, ephemeral.ErrMiss) {
		return []domain.Job{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(blob), nil
}

func (s *JobStore) Get(ctx context.Context, guestID, id string) (*domain.Job, error) {
	jobs, err := s.List(ctx, guestID)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			return &jobs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *JobStore) Create(ctx context.Context, guestID string, job *domain.Job) error {
	jobs, err := s.List(ctx, guestID)
	if err != nil {
		return err
	}
	return s.save(ctx, guestID, append([]domain.Job{*job}, jobs...))
}

func (s *JobStore) Update(ctx context.Context, guestID string, job *domain.Job) error {
	jobs, err := s.List(ctx, guestID)
	if err != nil {
		return err
	}
	for i := range jobs {
		if jobs[i].ID == job.ID {
			updated := *job
			updated.CreatedAt = jobs[i].CreatedAt
			updated.Owner = ""
			jobs[i] = updated
			return s.save(ctx, guestID, jobs)
		}
	}
	return domain.ErrNotFound
}

func (s *JobStore) Delete(ctx context.Context, guestID, id string) error {
	jobs, err := s.List(ctx, guestID)
	if err != nil {
		return err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			return s.save(ctx, guestID, append(jobs[:i], jobs[i+1:]...))
		}
	}
	return domain.ErrNotFound
}

func (s *JobStore) Clear(ctx context.Context, guestID string) error {
	return s.store.Delete(ctx, Key(guestID))
}

func (s *JobStore) save(ctx context.Context, guestID string, jobs []domain.Job) error {
	blob, err := encode(jobs)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, Key(guestID), blob, s.ttl)
}

func encode(jobs []domain.Job) ([]byte, error) {
	out := make([]record, 0, len(jobs))
	for _, j := range jobs {
		rec := record{
			SchemaVersion: domain.JobSchemaVersion,
			ID:            j.ID,
			Title:         j.Title,
			Company:       j.Company,
			Status:        string(j.Status),
			Deadline:      formatDate(j.Deadline),
			AppliedOn:     formatDate(j.AppliedOn),
			StatusLink:    j.StatusLink,
		}
		if j.Portal != nil {
			p := string(*j.Portal)
			rec.Portal = &p
		}
		if !j.CreatedAt.IsZero() {
			c := j.CreatedAt.UTC().Format(time.RFC3339Nano)
			rec.CreatedAt = &c
		}
		out = append(out, rec)
	}
	return json.Marshal(out)
}

func decode(blob []byte) []domain.Job {
	if !validBlob(blob) {
		logger.Log.Warn("Discarding malformed guest job list", "bytes", len(blob))
		return []domain.Job{}
	}

	var recs []record
	if err := json.Unmarshal(blob, &recs); err != nil {
		return []domain.Job{}
	}

	jobs := make([]domain.Job, 0, len(recs))
	for _, r := range recs {
		job := domain.Job{
			ID:         r.ID,
			Title:      r.Title,
			Company:    r.Company,
			Status:     domain.Status(r.Status),
			Deadline:   parseDate(r.Deadline),
			AppliedOn:  parseDate(r.AppliedOn),
			StatusLink: r.StatusLink,
		}
		if r.Portal != nil {
			p := domain.Portal(*r.Portal)
			job.Portal = &p
		}
		if r.CreatedAt != nil {
			if t, err := time.Parse(time.RFC3339Nano, *r.CreatedAt); err == nil {
				job.CreatedAt = t
			}
		}
		jobs = append(jobs, job)
	}
	return jobs
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
