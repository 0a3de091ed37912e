package middleware

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/audit"
	"job-tracker-backend/pkg/auth"
	"job-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "auth_token"
	GuestCookieName   = "guestSession"
	keyResolution     = "Resolution"
)

// SessionVerifier checks a session token; pkg/auth.Verifier satisfies it.
type SessionVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

// EncodeGuestMarker renders the guest marker as a cookie value.
func EncodeGuestMarker(m *domain.GuestMarker) (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeGuestMarker parses a cookie value. Malformed values and markers
// without an id read as no marker.
func DecodeGuestMarker(value string) *domain.GuestMarker {
	if value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var m domain.GuestMarker
	if err := json.Unmarshal(raw, &m); err != nil || m.ID == "" {
		return nil
	}
	return &m
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// remoteSession checks the request's token. A key fetch failure leaves the
// check incomplete; any other failure means no session.
func remoteSession(c *gin.Context, verifier SessionVerifier) domain.RemoteSession {
	token := bearerToken(c)
	if token == "" || verifier == nil {
		return domain.RemoteSession{Checked: true}
	}

	claims, err := verifier.Verify(token)
	if errors.Is(err, auth.ErrKeysUnavailable) {
		logger.Log.Warn("Session check incomplete", "error", err)
		return domain.RemoteSession{Checked: false}
	}
	if err != nil {
		return domain.RemoteSession{Checked: true}
	}

	return domain.RemoteSession{Checked: true, User: &domain.SessionUser{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Image: claims.Picture,
	}}
}

// ResolveIdentity classifies every request and stores the resolution on the
// context. It never rejects; RequireIdentity does.
func ResolveIdentity(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		remote := remoteSession(c, verifier)

		var marker *domain.GuestMarker
		if value, err := c.Cookie(GuestCookieName); err == nil {
			marker = DecodeGuestMarker(value)
		}

		res := domain.ResolveIdentity(remote, marker)
		if marker != nil && res.Identity.IsGuest() && remote.User != nil && remote.User.Email != domain.GuestEmail {
			audit.Default().Log(c.Request.Context(), audit.Event{
				Event:        audit.EventStaleGuestMarker,
				SubjectType:  "account",
				SubjectValue: audit.HashValue(remote.User.ID),
				IP:           c.ClientIP(),
				RequestID:    c.GetString(string(domain.KeyRequestID)),
			})
		}

		c.Set(keyResolution, res)
		if res.Resolved() {
			c.Set(string(domain.KeyIdentity), res.Identity)
		}
		c.Next()
	}
}

// RequireIdentity stops requests that have no usable identity: 503 with
// Retry-After while the session check is incomplete, 401 pointing at the
// sign-in page otherwise.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := CurrentResolution(c)
		switch {
		case res.Resolved():
			c.Next()
		case res.Loading:
			c.Header("Retry-After", "1")
			response.Error(c, http.StatusServiceUnavailable, "Checking your session. Please retry.", nil)
			c.Abort()
		default:
			response.Error(c, http.StatusUnauthorized, "Sign in to continue", gin.H{"redirect": "/"})
			c.Abort()
		}
	}
}

// CurrentResolution returns the resolution set by ResolveIdentity; without
// it the request counts as signed out.
func CurrentResolution(c *gin.Context) domain.Resolution {
	if v, ok := c.Get(keyResolution); ok {
		if res, ok := v.(domain.Resolution); ok {
			return res
		}
	}
	return domain.Resolution{Identity: domain.Identity{Kind: domain.IdentityUnresolved}}
}

func CurrentIdentity(c *gin.Context) domain.Identity {
	return CurrentResolution(c).Identity
}
