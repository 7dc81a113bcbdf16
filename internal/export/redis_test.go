package export

import (
	"context"
	"testing"
	"time"

	"crater-nest/internal/nest"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return mr, rc
}

func TestRedisSink_ReplacesHash(t *testing.T) {
	ctx := context.Background()
	mr, rc := newRedis(t)
	mr.HSet("crater:nested", "stale", "9")

	s := &RedisSink{Client: rc, Key: "crater:nested", TTL: time.Hour}
	require.NoError(t, s.Write(ctx, nest.Counts{"outer": 2, "middle": 1}))

	got, err := ReadRedis(ctx, rc, "crater:nested")
	require.NoError(t, err)
	assert.Equal(t, nest.Counts{"outer": 2, "middle": 1}, got)
	assert.Equal(t, time.Hour, mr.TTL("crater:nested"))
}

func TestRedisSink_EmptyCountsClearsKey(t *testing.T) {
	ctx := context.Background()
	mr, rc := newRedis(t)
	mr.HSet("k", "x", "1")

	s := &RedisSink{Client: rc, Key: "k"}
	require.NoError(t, s.Write(ctx, nest.Counts{}))
	assert.False(t, mr.Exists("k"))
}

func TestRedisSink_Unavailable(t *testing.T) {
	mr, rc := newRedis(t)
	mr.Close()

	s := &RedisSink{Client: rc, Key: "k"}
	err := s.Write(context.Background(), nest.Counts{"a": 1})
	assert.ErrorIs(t, err, ErrOutputUnwritable)

	err = (&RedisSink{Key: "k"}).Write(context.Background(), nil)
	assert.ErrorIs(t, err, ErrOutputUnwritable)
}
