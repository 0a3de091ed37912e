package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/guest"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/ephemeral"
	"job-tracker-backend/pkg/oauth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*oauth.Profile, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.Profile), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) Issue(subject, email, name, picture string) (string, time.Time, error) {
	return "token-for-" + subject, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func newAuth(provider usecase.OAuthProvider) (domain.AuthUsecase, *ephemeral.MemoryStore, *guest.JobStore) {
	mem := ephemeral.NewMemoryStore()
	guests := guest.NewJobStore(mem, time.Hour)
	return usecase.NewAuthUsecase(provider, stubIssuer{}, mem, guests), mem, guests
}

func TestCompleteOAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("Should issue a session and set the one-shot banner flag", func(t *testing.T) {
		provider := new(MockOAuthProvider)
		provider.On("Exchange", ctx, "code-1").Return(&oauth.Profile{ID: "li-42", Name: "Ada Lovelace", Email: "ada@example.org"}, nil)
		uc, _, _ := newAuth(provider)

		grant, err := uc.CompleteOAuth(ctx, "code-1")
		require.NoError(t, err)
		assert.Equal(t, "token-for-li-42", grant.Token)
		assert.Equal(t, "Ada Lovelace", grant.Profile.Name)

		id := domain.Identity{Kind: domain.IdentityAuthenticated, AccountID: "li-42"}
		assert.True(t, uc.ConsumeSignInBanner(ctx, id))
		assert.False(t, uc.ConsumeSignInBanner(ctx, id), "banner shows once")
	})

	t.Run("Should fail when the exchange fails", func(t *testing.T) {
		provider := new(MockOAuthProvider)
		provider.On("Exchange", ctx, "bad").Return(nil, errors.New("invalid_grant"))
		uc, _, _ := newAuth(provider)

		_, err := uc.CompleteOAuth(ctx, "bad")
		requireAppError(t, err, http.StatusBadGateway)
	})

	t.Run("Should reject a missing code", func(t *testing.T) {
		uc, _, _ := newAuth(new(MockOAuthProvider))
		_, err := uc.CompleteOAuth(ctx, "")
		requireAppError(t, err, http.StatusBadRequest)
	})
}

func TestBeginOAuth(t *testing.T) {
	ctx := context.Background()

	provider := new(MockOAuthProvider)
	provider.On("AuthCodeURL", mock.AnythingOfType("string")).Return("https://provider.example/authorize")
	uc, _, _ := newAuth(provider)

	url, state, err := uc.BeginOAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://provider.example/authorize", url)
	assert.NotEmpty(t, state)

	unconfigured := usecase.NewAuthUsecase(nil, stubIssuer{}, ephemeral.NewMemoryStore(), nil)
	_, _, err = unconfigured.BeginOAuth(ctx)
	requireAppError(t, err, http.StatusServiceUnavailable)
}

func TestStartGuest(t *testing.T) {
	uc, _, _ := newAuth(nil)

	marker, err := uc.StartGuest(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, marker.ID)
	assert.Equal(t, domain.GuestEmail, marker.User.Email)
	assert.Equal(t, "Guest", marker.User.Name)
	assert.Equal(t, "/default-avatar.png", marker.User.Image)

	res := domain.ResolveIdentity(domain.RemoteSession{Checked: true}, marker)
	assert.True(t, res.Identity.IsGuest())
	assert.False(t, uc.ConsumeSignInBanner(context.Background(), res.Identity))
}

func TestSignOut_ClearsGuestData(t *testing.T) {
	ctx := context.Background()
	uc, mem, guests := newAuth(nil)

	require.NoError(t, guests.Create(ctx, "g-1", &domain.Job{ID: "a", Title: "Dev", Company: "Acme", Status: domain.StatusWishlist}))
	require.NoError(t, mem.Set(ctx, "guestProfile:g-1", []byte(`{"name":"Grace"}`), 0))

	require.NoError(t, uc.SignOut(ctx, guestID))

	jobs, err := guests.List(ctx, "g-1")
	require.NoError(t, err)
	assert.Empty(t, jobs)
	_, err = mem.Get(ctx, "guestProfile:g-1")
	assert.ErrorIs(t, err, ephemeral.ErrMiss)
}
