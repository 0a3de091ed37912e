package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "job-tracker-backend"

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks session tokens. HS256 tokens are ours (issued after OAuth
// sign-in); RS256 tokens come from the hosted auth provider and are checked
// against its JWKS.
type Verifier struct {
	secret []byte
	jwks   *Provider
	ttl    time.Duration
	now    func() time.Time
}

func NewVerifier(secret string, jwks *Provider, ttl time.Duration) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		jwks:   jwks,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a session token for subject.
func (v *Verifier) Issue(subject, email, name, picture string) (string, time.Time, error) {
	if len(v.secret) == 0 {
		return "", time.Time{}, errors.New("auth: session secret not configured")
	}
	now := v.now()
	expires := now.Add(v.ttl)
	claims := SessionClaims{
		Email:   email,
		Name:    name,
		Picture: picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify parses tokenString. A returned error wrapping ErrKeysUnavailable
// means the outcome is not known yet.
func (v *Verifier) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if len(v.secret) == 0 {
				return nil, fmt.Errorf("HS256 token received but SESSION_JWT_SECRET is not configured")
			}
			return v.secret, nil
		case *jwt.SigningMethodRSA:
			if v.jwks == nil {
				return nil, fmt.Errorf("RS256 token received but no JWKS provider is configured")
			}
			return v.jwks.KeyFunc(token)
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
	}, jwt.WithTimeFunc(v.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("auth: token has no subject")
	}
	return claims, nil
}
