package domain_test

import (
	"testing"

	"job-tracker-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestResolveIdentity(t *testing.T) {
	account := &domain.SessionUser{ID: "acc-1", Email: "ada@example.org", Name: "Ada"}
	guestMarker := &domain.GuestMarker{ID: "g-1", User: domain.GuestUser{Name: "Guest", Email: domain.GuestEmail}}

	t.Run("Account session resolves to authenticated", func(t *testing.T) {
		res := domain.ResolveIdentity(domain.RemoteSession{Checked: true, User: account}, nil)
		assert.True(t, res.Resolved())
		assert.Equal(t, domain.IdentityAuthenticated, res.Identity.Kind)
		assert.Equal(t, "acc-1", res.Identity.AccountID)
		assert.Empty(t, res.Identity.GuestID)
	})

	t.Run("Sentinel email on the remote session wins over a real token", func(t *testing.T) {
		user := &domain.SessionUser{ID: "sub-9", Email: domain.GuestEmail, Name: "Guest"}
		res := domain.ResolveIdentity(domain.RemoteSession{Checked: true, User: user}, nil)
		assert.Equal(t, domain.IdentityGuest, res.Identity.Kind)
		assert.Equal(t, "sub-9", res.Identity.GuestID)
		assert.Empty(t, res.Identity.AccountID)
	})

	t.Run("Stale guest marker wins over an account session", func(t *testing.T) {
		res := domain.ResolveIdentity(domain.RemoteSession{Checked: true, User: account}, guestMarker)
		assert.Equal(t, domain.IdentityGuest, res.Identity.Kind)
		assert.Equal(t, "g-1", res.Identity.GuestID)
	})

	t.Run("Marker without the sentinel is ignored", func(t *testing.T) {
		marker := &domain.GuestMarker{ID: "g-2", User: domain.GuestUser{Email: "someone@else.org"}}
		res := domain.ResolveIdentity(domain.RemoteSession{Checked: true}, marker)
		assert.False(t, res.Resolved())
		assert.True(t, res.NeedsSignIn())
	})

	t.Run("Completed check without session needs sign-in", func(t *testing.T) {
		res := domain.ResolveIdentity(domain.RemoteSession{Checked: true}, nil)
		assert.Equal(t, domain.IdentityUnresolved, res.Identity.Kind)
		assert.True(t, res.NeedsSignIn())
		assert.False(t, res.Loading)
	})

	t.Run("Check in flight is loading", func(t *testing.T) {
		res := domain.ResolveIdentity(domain.RemoteSession{}, nil)
		assert.False(t, res.Resolved())
		assert.True(t, res.Loading)
		assert.False(t, res.NeedsSignIn())
	})

	t.Run("Guest marker resolves while the check is in flight", func(t *testing.T) {
		res := domain.ResolveIdentity(domain.RemoteSession{}, guestMarker)
		assert.Equal(t, domain.IdentityGuest, res.Identity.Kind)
	})
}

func TestIdentitySubject(t *testing.T) {
	assert.Equal(t, "guest:g-1", domain.Identity{Kind: domain.IdentityGuest, GuestID: "g-1"}.Subject())
	assert.Equal(t, "account:a-1", domain.Identity{Kind: domain.IdentityAuthenticated, AccountID: "a-1"}.Subject())
}
