package v1

import (
	"context"
	"io"

	"job-tracker-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockJobUsecase struct {
	mock.Mock
}

func (m *MockJobUsecase) ListJobs(ctx context.Context, id domain.Identity, filter domain.JobFilter) (*domain.JobListing, error) {
	args := m.Called(ctx, id, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobListing), args.Error(1)
}

func (m *MockJobUsecase) GetJob(ctx context.Context, id domain.Identity, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, id, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUsecase) CreateJob(ctx context.Context, id domain.Identity, job *domain.Job) error {
	return m.Called(ctx, id, job).Error(0)
}

func (m *MockJobUsecase) UpdateJob(ctx context.Context, id domain.Identity, job *domain.Job) error {
	return m.Called(ctx, id, job).Error(0)
}

func (m *MockJobUsecase) DeleteJob(ctx context.Context, id domain.Identity, jobID string, confirmed bool, filter domain.JobFilter) (*domain.JobListing, error) {
	args := m.Called(ctx, id, jobID, confirmed, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobListing), args.Error(1)
}

func (m *MockJobUsecase) GetStats(ctx context.Context, id domain.Identity) (*domain.JobStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobStats), args.Error(1)
}

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) BeginOAuth(ctx context.Context) (string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthUsecase) CompleteOAuth(ctx context.Context, code string) (*domain.SessionGrant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionGrant), args.Error(1)
}

func (m *MockAuthUsecase) StartGuest(ctx context.Context) (*domain.GuestMarker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestMarker), args.Error(1)
}

func (m *MockAuthUsecase) SignOut(ctx context.Context, id domain.Identity) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAuthUsecase) ConsumeSignInBanner(ctx context.Context, id domain.Identity) bool {
	return m.Called(ctx, id).Bool(0)
}

type MockProfileUsecase struct {
	mock.Mock
}

func (m *MockProfileUsecase) GetProfile(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileUsecase) UpdateGuestProfile(ctx context.Context, id domain.Identity, name, email string) (*domain.Profile, error) {
	args := m.Called(ctx, id, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileUsecase) SetGuestAvatar(ctx context.Context, id domain.Identity, r io.Reader) error {
	return m.Called(ctx, id, r).Error(0)
}

func (m *MockProfileUsecase) GuestAvatar(ctx context.Context, id domain.Identity) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockExportUsecase struct {
	mock.Mock
}

func (m *MockExportUsecase) Export(ctx context.Context, id domain.Identity, format string, ids []string) ([]byte, string, string, error) {
	args := m.Called(ctx, id, format, ids)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).([]byte), args.String(1), args.String(2), args.Error(3)
}

func (m *MockExportUsecase) Archive(ctx context.Context, id domain.Identity) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
