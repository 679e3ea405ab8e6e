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

func newTestService(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(client), mr
}

func TestGetSetDelete(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	var seats []int
	assert.ErrorIs(t, svc.Get(ctx, "k", &seats), ErrCacheMiss)

	require.NoError(t, svc.Set(ctx, "k", []int{1, 2, 2}, time.Minute))
	assert.True(t, mr.Exists("k"))
	require.NoError(t, svc.Get(ctx, "k", &seats))
	assert.Equal(t, []int{1, 2, 2}, seats)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("k"))

	require.NoError(t, svc.Set(ctx, "k", []int{3}, time.Minute))
	require.NoError(t, svc.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
	assert.NoError(t, svc.Ping(ctx))
}

func TestGetOrSet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []int{7, 8}, nil
	}

	var first, second []int
	require.NoError(t, svc.GetOrSet(ctx, "seats", time.Minute, fetch, &first))
	require.NoError(t, svc.GetOrSet(ctx, "seats", time.Minute, fetch, &second))

	assert.Equal(t, []int{7, 8}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	var out []int
	err := svc.GetOrSet(ctx, "other", time.Minute, func() (interface{}, error) {
		return nil, errors.New("store down")
	}, &out)
	assert.ErrorContains(t, err, "store down")
}
