package usecase

import (
	"context"
	"time"

	"job-tracker-backend/internal/domain"
)

// JobList is the list view state for one identity: the loaded records, the
// active filter and the filtered view derived from both. Every mutation
// recomputes the filtered view. A JobList is not safe for concurrent use.
type JobList struct {
	base     []domain.Job
	filter   domain.JobFilter
	filtered []domain.Job
	now      func() time.Time
}

func NewJobList(now func() time.Time) *JobList {
	if now == nil {
		now = time.Now
	}
	l := &JobList{now: now}
	l.refresh()
	return l
}

func (l *JobList) SetRecords(jobs []domain.Job) {
	l.base = append([]domain.Job(nil), jobs...)
	l.refresh()
}

func (l *JobList) SetFilter(f domain.JobFilter) {
	l.filter = f
	l.refresh()
}

// ClearFilters resets every predicate to its sentinel at once.
func (l *JobList) ClearFilters() {
	l.filter = domain.JobFilter{Status: "All", Portal: "All", Window: domain.WindowAll}
	l.refresh()
}

func (l *JobList) Filter() domain.JobFilter { return l.filter }

func (l *JobList) Records() []domain.Job { return l.base }

func (l *JobList) Filtered() []domain.Job { return l.filtered }

// Remove drops the record with id and reports where it was so a failed
// persist can put it back.
func (l *JobList) Remove(id string) (domain.Job, int, bool) {
	for i, j := range l.base {
		if j.ID == id {
			l.base = append(l.base[:i:i], l.base[i+1:]...)
			l.refresh()
			return j, i, true
		}
	}
	return domain.Job{}, -1, false
}

// Restore reinserts job at index, clamped to the current length.
func (l *JobList) Restore(job domain.Job, index int) {
	if index < 0 || index > len(l.base) {
		index = len(l.base)
	}
	restored := make([]domain.Job, 0, len(l.base)+1)
	restored = append(restored, l.base[:index]...)
	restored = append(restored, job)
	restored = append(restored, l.base[index:]...)
	l.base = restored
	l.refresh()
}

// Delete removes the record optimistically, then persists through del. When
// persisting fails the record is restored at its original position and the
// error is returned.
func (l *JobList) Delete(ctx context.Context, id string, del func(ctx context.Context, id string) error) error {
	job, index, ok := l.Remove(id)
	if !ok {
		return domain.ErrNotFound
	}
	if err := del(ctx, id); err != nil {
		l.Restore(job, index)
		return err
	}
	return nil
}

func (l *JobList) Listing() *domain.JobListing {
	return &domain.JobListing{
		Jobs:     l.filtered,
		Total:    len(l.base),
		Filtered: len(l.filtered),
		Filter:   l.filter,
	}
}

func (l *JobList) refresh() {
	l.filtered = domain.FilterJobs(l.base, l.filter, l.now())
}
