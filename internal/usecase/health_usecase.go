package usecase

import (
	"context"
	"errors"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/redis"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	gateway     domain.EmailGateway
	redisHealth func(ctx context.Context) error
}

func NewHealthUsecase(gateway domain.EmailGateway) HealthUsecase {
	return &healthUsecase{
		gateway:     gateway,
		redisHealth: redis.HealthCheck,
	}
}

// Check reports component status; it never fails the liveness probe itself
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"email":  "configured",
		"redis":  "ok",
	}

	if u.gateway == nil || !u.gateway.IsConfigured() {
		status["email"] = "unconfigured"
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := u.redisHealth(ctx); err != nil {
		if errors.Is(err, redis.ErrNotConfigured) {
			status["redis"] = "disabled"
		} else {
			status["redis"] = "unavailable"
		}
	}

	return status
}
