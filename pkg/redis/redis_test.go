package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/geoapi/pkg/redis"
)

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		mock.ExpectPing().SetVal("PONG")

		assert.NoError(t, redis.Healthcheck(db)(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unhealthy", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("connection refused"))

		err := redis.Healthcheck(db)(context.Background())
		assert.ErrorIs(t, err, redis.ErrNotReady)
	})

	t.Run("unexpected reply", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		mock.ExpectPing().SetVal("LOADING")

		err := redis.Healthcheck(db)(context.Background())
		assert.ErrorIs(t, err, redis.ErrNotReady)
		assert.Contains(t, err.Error(), "LOADING")
	})
}

func TestConnectInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "not-a-url://",
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrInvalidURL)
}

func TestConnectCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := redis.Connect(ctx, redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  3,
		RetryInterval:  time.Hour,
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrNotReady)
	assert.ErrorIs(t, err, context.Canceled)
}
