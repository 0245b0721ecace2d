package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"celebrai-backend/internal/usecase"
)

func TestHealthCheck(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("refused") }

	assert.Equal(t, map[string]string{"status": "ok"}, usecase.NewHealthUsecase(nil).Check(context.Background()))

	got := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": up, "redis": down}).Check(context.Background())
	assert.Equal(t, map[string]string{"status": "degraded", "database": "up", "redis": "down"}, got)
}
