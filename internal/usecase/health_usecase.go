package usecase

import (
	"context"
	"time"
)

// Pinger reports whether a backing service answers.
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	// Check pings every dependency; ok is false when any of them failed.
	Check(ctx context.Context) (status map[string]string, ok bool)
}

type healthUsecase struct {
	pingers map[string]Pinger
	timeout time.Duration
}

// NewHealthUsecase checks the named dependencies. Nil pingers are skipped.
func NewHealthUsecase(pingers map[string]Pinger) HealthUsecase {
	return &healthUsecase{pingers: pingers, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"status": "ok"}
	ok := true

	for name, ping := range u.pingers {
		if ping == nil {
			continue
		}
		pingCtx, cancel := context.WithTimeout(ctx, u.timeout)
		err := ping(pingCtx)
		cancel()

		if err != nil {
			status[name] = "unavailable"
			ok = false
			continue
		}
		status[name] = "ok"
	}

	if !ok {
		status["status"] = "degraded"
	}
	return status, ok
}
