package usecase

import (
	"context"
	"errors"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/audit"
	"job-tracker-backend/pkg/ephemeral"
	"job-tracker-backend/pkg/logger"
	"job-tracker-backend/pkg/oauth"

	"github.com/google/uuid"
)

const (
	signInFlagTTL     = 10 * time.Minute
	guestDisplayName  = "Guest"
	guestDefaultImage = "/default-avatar.png"
)

// OAuthProvider is the code-flow half of pkg/oauth.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth.Profile, error)
}

// SessionIssuer signs session tokens for signed-in accounts.
type SessionIssuer interface {
	Issue(subject, email, name, picture string) (string, time.Time, error)
}

type authUsecase struct {
	provider OAuthProvider
	issuer   SessionIssuer
	flags    ephemeral.Store
	guests   domain.GuestJobRepository
	audit    *audit.Logger
}

// NewAuthUsecase builds the sign-in flows. provider may be nil when OAuth is
// not configured; guest sign-in keeps working.
func NewAuthUsecase(provider OAuthProvider, issuer SessionIssuer, flags ephemeral.Store, guests domain.GuestJobRepository) domain.AuthUsecase {
	return &authUsecase{
		provider: provider,
		issuer:   issuer,
		flags:    flags,
		guests:   guests,
		audit:    audit.Default(),
	}
}

func signInFlagKey(id domain.Identity) string {
	return "justLoggedIn:" + id.Subject()
}

func (u *authUsecase) BeginOAuth(ctx context.Context) (string, string, error) {
	if u.provider == nil {
		return "", "", apperror.ServiceUnavailable("LinkedIn sign-in is not configured")
	}
	state := uuid.New().String()
	return u.provider.AuthCodeURL(state), state, nil
}

func (u *authUsecase) CompleteOAuth(ctx context.Context, code string) (*domain.SessionGrant, error) {
	if u.provider == nil {
		return nil, apperror.ServiceUnavailable("LinkedIn sign-in is not configured")
	}
	if code == "" {
		return nil, apperror.BadRequest("Missing authorization code")
	}

	profile, err := u.provider.Exchange(ctx, code)
	if err != nil {
		u.audit.SignIn(ctx, "", "", "", "exchange_failed")
		return nil, apperror.New(502, "Sign-in with LinkedIn failed", err)
	}
	if profile.ID == "" {
		u.audit.SignIn(ctx, profile.Email, "", "", "missing_subject")
		return nil, apperror.New(502, "Sign-in with LinkedIn failed", errors.New("profile has no id"))
	}

	token, expires, err := u.issuer.Issue(profile.ID, profile.Email, profile.Name, profile.Image)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	account := domain.Identity{Kind: domain.IdentityAuthenticated, AccountID: profile.ID}
	if err := u.flags.Set(ctx, signInFlagKey(account), []byte("true"), signInFlagTTL); err != nil {
		// The banner is cosmetic; sign-in still succeeds.
		logger.Log.Warn("Failed to set sign-in flag", "error", err)
	}

	u.audit.SignIn(ctx, profile.Email, "", "", "")
	return &domain.SessionGrant{
		Token:     token,
		ExpiresAt: expires,
		Profile: domain.Profile{
			Name:  profile.Name,
			Email: profile.Email,
			Image: profile.Image,
		},
	}, nil
}

func (u *authUsecase) StartGuest(ctx context.Context) (*domain.GuestMarker, error) {
	marker := &domain.GuestMarker{
		ID: uuid.New().String(),
		User: domain.GuestUser{
			Name:  guestDisplayName,
			Email: domain.GuestEmail,
			Image: guestDefaultImage,
		},
	}
	u.audit.Log(ctx, audit.Event{
		Event:        audit.EventGuestSignIn,
		SubjectType:  "guest",
		SubjectValue: audit.HashValue(marker.ID),
	})
	return marker, nil
}

// SignOut drops the pending banner flag and, for guests, everything kept
// for the guest id. Cookies are cleared by the caller.
func (u *authUsecase) SignOut(ctx context.Context, id domain.Identity) error {
	keys := []string{signInFlagKey(id)}
	if id.IsGuest() {
		keys = append(keys, guestProfileKey(id.GuestID), guestAvatarKey(id.GuestID))
		if err := u.guests.Clear(ctx, id.GuestID); err != nil {
			return apperror.StoreUnavailable(err)
		}
	}
	if err := u.flags.Delete(ctx, keys...); err != nil {
		return apperror.StoreUnavailable(err)
	}

	u.audit.Log(ctx, audit.Event{
		Event:        audit.EventSignOut,
		SubjectType:  string(id.Kind),
		SubjectValue: audit.HashValue(id.Subject()),
	})
	return nil
}

func (u *authUsecase) ConsumeSignInBanner(ctx context.Context, id domain.Identity) bool {
	_, err := u.flags.Take(ctx, signInFlagKey(id))
	if err != nil && !errors.Is(err, ephemeral.ErrMiss) {
		logger.Log.Warn("Failed to read sign-in flag", "error", err)
	}
	return err == nil
}
