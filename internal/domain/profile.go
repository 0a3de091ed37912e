package domain

import (
	"context"
	"io"
	"time"
)

// Profile is what the profile page shows for the current identity.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image"`
	IsGuest bool   `json:"is_guest"`
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, id Identity) (*Profile, error)
	UpdateGuestProfile(ctx context.Context, id Identity, name, email string) (*Profile, error)
	SetGuestAvatar(ctx context.Context, id Identity, r io.Reader) error
	GuestAvatar(ctx context.Context, id Identity) ([]byte, error)
}

// SessionGrant is issued after a successful OAuth sign-in.
type SessionGrant struct {
	Token     string
	ExpiresAt time.Time
	Profile   Profile
}

type AuthUsecase interface {
	// BeginOAuth returns the provider URL and the state to bind to the client.
	BeginOAuth(ctx context.Context) (url, state string, err error)
	CompleteOAuth(ctx context.Context, code string) (*SessionGrant, error)
	StartGuest(ctx context.Context) (*GuestMarker, error)
	SignOut(ctx context.Context, id Identity) error
	// ConsumeSignInBanner reports true exactly once after a sign-in.
	ConsumeSignInBanner(ctx context.Context, id Identity) bool
}
