package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	healthy := NewHealthUsecase(map[string]Pinger{
		"database": func(context.Context) error { return nil },
		"redis":    nil,
	})
	status, ok := healthy.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"status": "ok", "database": "ok"}, status)

	degraded := NewHealthUsecase(map[string]Pinger{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("timeout") },
	})
	status, ok = degraded.Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "unavailable", status["redis"])
}
