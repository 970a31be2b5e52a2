package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/geoapi/pkg/cache"
)

func TestRedisStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("get hit", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		s := cache.NewRedisStore(db, "test:")

		mock.ExpectGet("test:k").SetVal("v")

		got, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get miss", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		s := cache.NewRedisStore(db, "test:")

		mock.ExpectGet("test:k").RedisNil()

		got, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get error", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		s := cache.NewRedisStore(db, "test:")

		mock.ExpectGet("test:k").SetErr(errors.New("connection refused"))

		_, ok, err := s.Get(ctx, "k")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("set with ttl", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		s := cache.NewRedisStore(db, "test:")

		mock.ExpectSet("test:k", []byte("v"), time.Minute).SetVal("OK")

		require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set with zero ttl is skipped", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		s := cache.NewRedisStore(db, "test:")

		require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		s := cache.NewRedisStore(db, "")

		mock.ExpectDel(cache.DefaultKeyPrefix + "k").SetVal(1)

		require.NoError(t, s.Delete(ctx, "k"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
