package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewFromClient(client), mr
}

func TestGetSetDelete(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "unit:mg")
	assert.True(t, errors.Is(err, ErrMiss))

	require.NoError(t, c.Set(ctx, "unit:mg", "milligram", time.Minute))
	val, err := c.Get(ctx, "unit:mg")
	require.NoError(t, err)
	assert.Equal(t, "milligram", val)

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "unit:mg")
	assert.True(t, errors.Is(err, ErrMiss))

	require.NoError(t, c.Set(ctx, "a", "1", 0))
	require.NoError(t, c.Set(ctx, "b", "2", 0))
	require.NoError(t, c.Delete(ctx, "a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestSetJSON(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "unit:kg", map[string]any{"ucumCode": "kg"}, time.Minute))

	raw, err := c.Get(ctx, "unit:kg")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ucumCode":"kg"}`, raw)
	assert.Equal(t, time.Minute, mr.TTL("unit:kg"))

	assert.Error(t, c.SetJSON(ctx, "bad", make(chan int), time.Minute))
	assert.False(t, mr.Exists("bad"))
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache("127.0.0.1:1")
	assert.Error(t, err)
}
