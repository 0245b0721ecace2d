package usecase

import (
	"context"
	"time"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	checks map[string]HealthCheck
}

// NewHealthUsecase reports "ok" plus one entry per named check.
func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out := map[string]string{"status": "ok"}
	for name, check := range u.checks {
		if err := check(ctx); err != nil {
			out[name] = "down"
			out["status"] = "degraded"
			continue
		}
		out[name] = "up"
	}
	return out
}
