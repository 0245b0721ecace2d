package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"celebrai-backend/pkg/redis"
)

func TestOpenRequiresURL(t *testing.T) {
	_, err := redis.Open(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrNotConfigured)
}

func TestOpenRejectsBadURL(t *testing.T) {
	_, err := redis.Open(context.Background(), redis.Config{URL: "http://not-redis"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid URL")
}
