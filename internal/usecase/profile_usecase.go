package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/ephemeral"
	"job-tracker-backend/pkg/imaging"
)

// GuestAvatarPath is where an uploaded guest avatar is served from.
const GuestAvatarPath = "/v1/profile/avatar"

func guestProfileKey(guestID string) string { return "guestProfile:" + guestID }
func guestAvatarKey(guestID string) string  { return "guestAvatar:" + guestID }

type guestOverrides struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type profileUsecase struct {
	store ephemeral.Store
	ttl   time.Duration
}

func NewProfileUsecase(store ephemeral.Store, guestTTL time.Duration) domain.ProfileUsecase {
	return &profileUsecase{store: store, ttl: guestTTL}
}

func (u *profileUsecase) GetProfile(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	switch id.Kind {
	case domain.IdentityAuthenticated:
		return &domain.Profile{Name: id.Name, Email: id.Email, Image: id.Image}, nil
	case domain.IdentityGuest:
	default:
		return nil, apperror.Unauthorized("Sign in to continue")
	}

	profile := &domain.Profile{Name: id.Name, Email: id.Email, Image: id.Image, IsGuest: true}

	overrides, err := u.overrides(ctx, id.GuestID)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if overrides.Name != "" {
		profile.Name = overrides.Name
	}
	if overrides.Email != "" {
		profile.Email = overrides.Email
	}

	if _, err := u.store.Get(ctx, guestAvatarKey(id.GuestID)); err == nil {
		profile.Image = GuestAvatarPath
	}
	return profile, nil
}

// UpdateGuestProfile changes the displayed name and email. The guest
// classification keeps following the marker, so an edited email does not
// turn the guest into anything else.
func (u *profileUsecase) UpdateGuestProfile(ctx context.Context, id domain.Identity, name, email string) (*domain.Profile, error) {
	if !id.IsGuest() {
		return nil, apperror.Forbidden("Only guest profiles can be edited here")
	}

	overrides, err := u.overrides(ctx, id.GuestID)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if name = strings.TrimSpace(name); name != "" {
		overrides.Name = name
	}
	if email = strings.TrimSpace(email); email != "" {
		overrides.Email = email
	}

	blob, err := json.Marshal(overrides)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.store.Set(ctx, guestProfileKey(id.GuestID), blob, u.ttl); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	return u.GetProfile(ctx, id)
}

func (u *profileUsecase) SetGuestAvatar(ctx context.Context, id domain.Identity, r io.Reader) error {
	if !id.IsGuest() {
		return apperror.Forbidden("Only guest profiles can change their picture")
	}

	data, err := imaging.Avatar(r)
	if errors.Is(err, imaging.ErrTooLarge) {
		return apperror.New(http.StatusRequestEntityTooLarge, "Image must be 5 MB or smaller", err)
	}
	if err != nil {
		return apperror.BadRequest("Image must be a PNG, JPEG or GIF")
	}

	if err := u.store.Set(ctx, guestAvatarKey(id.GuestID), data, u.ttl); err != nil {
		return apperror.StoreUnavailable(err)
	}
	return nil
}

func (u *profileUsecase) GuestAvatar(ctx context.Context, id domain.Identity) ([]byte, error) {
	if !id.IsGuest() {
		return nil, apperror.NotFound("No uploaded picture")
	}
	data, err := u.store.Get(ctx, guestAvatarKey(id.GuestID))
	if errors.Is(err, ephemeral.ErrMiss) {
		return nil, apperror.NotFound("No uploaded picture")
	}
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	return data, nil
}

// overrides reads the stored edits; unreadable content counts as none.
func (u *profileUsecase) overrides(ctx context.Context, guestID string) (guestOverrides, error) {
	var o guestOverrides
	blob, err := u.store.Get(ctx, guestProfileKey(guestID))
	if errors.Is(err, ephemeral.ErrMiss) {
		return o, nil
	}
	if err != nil {
		return o, err
	}
	if json.Unmarshal(blob, &o) != nil {
		return guestOverrides{}, nil
	}
	return o, nil
}
