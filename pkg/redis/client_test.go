package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromURL(t *testing.T) {
	t.Run("TLS scheme with default port and userinfo password", func(t *testing.T) {
		opts, err := optionsFromURL(Config{URL: "rediss://default:pw@eu1-example.upstash.io"})
		require.NoError(t, err)
		assert.Equal(t, "eu1-example.upstash.io:6379", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})

	t.Run("explicit password wins", func(t *testing.T) {
		opts, err := optionsFromURL(Config{URL: "redis://localhost:6380", Password: "explicit"})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6380", opts.Addr)
		assert.Equal(t, "explicit", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("rejects other schemes", func(t *testing.T) {
		_, err := optionsFromURL(Config{URL: "http://localhost"})
		assert.Error(t, err)
	})
}
