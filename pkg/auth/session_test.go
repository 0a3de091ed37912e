package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifierRoundTrip(t *testing.T) {
	v := NewVerifier("test-secret", nil, time.Hour)

	token, expires, err := v.Issue("acct-1", "ada@example.com", "Ada Lovelace", "")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.Name)
}

func TestVerifierRejects(t *testing.T) {
	v := NewVerifier("test-secret", nil, time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewVerifier("other-secret", nil, time.Hour)
		token, _, err := other.Issue("acct-1", "a@example.com", "", "")
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewVerifier("test-secret", nil, time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := past.Issue("acct-1", "a@example.com", "", "")
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("issue without secret", func(t *testing.T) {
		_, _, err := NewVerifier("", nil, time.Hour).Issue("acct-1", "", "", "")
		assert.Error(t, err)
	})
}

func TestVerifierJWKSUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := NewVerifier("", NewProvider(srv.URL), time.Hour)

	// Header and claims only; the signature is never reached because the key lookup fails first.
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "acct-1"})
	token.Header["kid"] = "k1"
	unsigned, err := token.SigningString()
	require.NoError(t, err)

	_, err = v.Verify(unsigned + ".c2ln")
	assert.ErrorIs(t, err, ErrKeysUnavailable)
}
