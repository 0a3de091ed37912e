package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/logger"

	"github.com/google/uuid"
)

type jobUsecase struct {
	store domain.JobStore
	now   func() time.Time
}

func NewJobUsecase(store domain.JobStore) domain.JobUsecase {
	return &jobUsecase{store: store, now: time.Now}
}

func (u *jobUsecase) ListJobs(ctx context.Context, id domain.Identity, filter domain.JobFilter) (*domain.JobListing, error) {
	list, err := u.load(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	return list.Listing(), nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id domain.Identity, jobID string) (*domain.Job, error) {
	job, err := u.store.Get(ctx, id, jobID)
	if err != nil {
		return nil, storeError(err)
	}
	return job, nil
}

func (u *jobUsecase) CreateJob(ctx context.Context, id domain.Identity, job *domain.Job) error {
	if err := normalize(job); err != nil {
		return err
	}

	job.ID = uuid.New().String()
	job.CreatedAt = u.now().UTC()

	if err := u.store.Create(ctx, id, job); err != nil {
		return storeError(err)
	}
	return nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id domain.Identity, job *domain.Job) error {
	existing, err := u.store.Get(ctx, id, job.ID)
	if err != nil {
		return storeError(err)
	}
	if err := normalize(job); err != nil {
		return err
	}
	job.CreatedAt = existing.CreatedAt

	if err := u.store.Update(ctx, id, job); err != nil {
		return storeError(err)
	}
	return nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id domain.Identity, jobID string, confirmed bool, filter domain.JobFilter) (*domain.JobListing, error) {
	list, err := u.load(ctx, id, filter)
	if err != nil {
		return nil, err
	}

	var target *domain.Job
	for _, j := range list.Records() {
		if j.ID == jobID {
			j := j
			target = &j
			break
		}
	}
	if target == nil {
		return nil, apperror.NotFound("Job not found")
	}

	if !confirmed {
		prompt := DeletePrompt(*target)
		return nil, apperror.Conflict(prompt).WithDetails(map[string]interface{}{
			"confirm": prompt,
			"job":     target,
		})
	}

	err = list.Delete(ctx, jobID, func(ctx context.Context, jobID string) error {
		return u.store.Delete(ctx, id, jobID)
	})
	if err != nil {
		logger.Log.Warn("Delete rolled back", "job_id", jobID, "error", err)
		appErr := storeError(err)
		return list.Listing(), appErr.WithDetails(list.Listing())
	}
	return list.Listing(), nil
}

func (u *jobUsecase) GetStats(ctx context.Context, id domain.Identity) (*domain.JobStats, error) {
	jobs, err := u.store.List(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	stats := domain.ComputeStats(jobs, u.now())
	return &stats, nil
}

func (u *jobUsecase) load(ctx context.Context, id domain.Identity, filter domain.JobFilter) (*JobList, error) {
	jobs, err := u.store.List(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	list := NewJobList(u.now)
	list.SetRecords(jobs)
	list.SetFilter(filter)
	return list, nil
}

// DeletePrompt is the confirmation text naming the record.
func DeletePrompt(job domain.Job) string {
	return fmt.Sprintf("Delete \"%s\" at %s?", job.Title, job.Company)
}

// normalize trims text fields, applies the default status and rejects
// values outside the enumerations.
func normalize(job *domain.Job) error {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	if job.Title == "" {
		return apperror.BadRequest("Job title is required")
	}
	if job.Company == "" {
		return apperror.BadRequest("Company is required")
	}

	if job.Status == "" {
		job.Status = domain.StatusWishlist
	}
	if !job.Status.Valid() {
		return apperror.BadRequest(fmt.Sprintf("Unknown status %q", job.Status))
	}
	if job.Portal != nil && !job.Portal.Valid() {
		return apperror.BadRequest(fmt.Sprintf("Unknown portal %q", *job.Portal))
	}
	if job.StatusLink != nil && strings.TrimSpace(*job.StatusLink) == "" {
		job.StatusLink = nil
	}
	return nil
}

func storeError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Job not found")
	case errors.Is(err, repository.ErrUnresolvedIdentity):
		return apperror.Unauthorized("Sign in to continue")
	default:
		return apperror.StoreUnavailable(err)
	}
}
