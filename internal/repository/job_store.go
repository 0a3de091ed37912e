// Package repository wires the two job backends behind domain.JobStore.
package repository

import (
	"context"
	"errors"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/audit"
)

// ErrUnresolvedIdentity is returned when a store call is made before the
// identity has been resolved to an account or a guest.
var ErrUnresolvedIdentity = errors.New("identity is not resolved")

type jobStore struct {
	accounts domain.JobRepository
	guests   domain.GuestJobRepository
	audit    *audit.Logger
}

// NewJobStore routes guests to the ephemeral backend and accounts to the
// relational one.
func NewJobStore(accounts domain.JobRepository, guests domain.GuestJobRepository) domain.JobStore {
	return &jobStore{accounts: accounts, guests: guests, audit: audit.Default()}
}

func (s *jobStore) List(ctx context.Context, id domain.Identity) ([]domain.Job, error) {
	switch id.Kind {
	case domain.IdentityGuest:
		return s.guests.List(ctx, id.GuestID)
	case domain.IdentityAuthenticated:
		return s.accounts.ListByOwner(ctx, id.AccountID)
	}
	return nil, ErrUnresolvedIdentity
}

func (s *jobStore) ListByIDs(ctx context.Context, id domain.Identity, ids []string) ([]domain.Job, error) {
	switch id.Kind {
	case domain.IdentityGuest:
		jobs, err := s.guests.List(ctx, id.GuestID)
		if err != nil {
			return nil, err
		}
		want := make(map[string]struct{}, len(ids))
		for _, v := range ids {
			want[v] = struct{}{}
		}
		out := make([]domain.Job, 0, len(ids))
		for _, j := range jobs {
			if _, ok := want[j.ID]; ok {
				out = append(out, j)
			}
		}
		return out, nil
	case domain.IdentityAuthenticated:
		return s.accounts.ListByIDsAndOwner(ctx, id.AccountID, ids)
	}
	return nil, ErrUnresolvedIdentity
}

func (s *jobStore) Get(ctx context.Context, id domain.Identity, jobID string) (*domain.Job, error) {
	switch id.Kind {
	case domain.IdentityGuest:
		return s.guests.Get(ctx, id.GuestID, jobID)
	case domain.IdentityAuthenticated:
		return s.accounts.GetByIDAndOwner(ctx, jobID, id.AccountID)
	}
	return nil, ErrUnresolvedIdentity
}

func (s *jobStore) Create(ctx context.Context, id domain.Identity, job *domain.Job) error {
	switch id.Kind {
	case domain.IdentityGuest:
		job.Owner = ""
		return s.guests.Create(ctx, id.GuestID, job)
	case domain.IdentityAuthenticated:
		job.Owner = id.AccountID
		return s.accounts.Create(ctx, job)
	}
	return ErrUnresolvedIdentity
}

func (s *jobStore) Update(ctx context.Context, id domain.Identity, job *domain.Job) error {
	switch id.Kind {
	case domain.IdentityGuest:
		job.Owner = ""
		return s.guests.Update(ctx, id.GuestID, job)
	case domain.IdentityAuthenticated:
		job.Owner = id.AccountID
		err := s.accounts.UpdateByIDAndOwner(ctx, job)
		if errors.Is(err, domain.ErrNotFound) {
			s.audit.OwnershipMiss(ctx, id.AccountID, job.ID, "update")
		}
		return err
	}
	return ErrUnresolvedIdentity
}

func (s *jobStore) Delete(ctx context.Context, id domain.Identity, jobID string) error {
	switch id.Kind {
	case domain.IdentityGuest:
		return s.guests.Delete(ctx, id.GuestID, jobID)
	case domain.IdentityAuthenticated:
		err := s.accounts.DeleteByIDAndOwner(ctx, jobID, id.AccountID)
		if errors.Is(err, domain.ErrNotFound) {
			s.audit.OwnershipMiss(ctx, id.AccountID, jobID, "delete")
		}
		return err
	}
	return ErrUnresolvedIdentity
}
