package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*TeacherCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTeacherCache(client, time.Minute, logger.NewNop()), mr
}

func TestTeacherCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheMiss)

	profile := &entity.TeacherProfile{ID: "abc", FullName: "Tom", Subjects: []string{"Math"}}
	require.NoError(t, c.Set(ctx, profile))

	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Tom", got.FullName)
	assert.Equal(t, []string{"Math"}, got.Subjects)

	require.NoError(t, c.Delete(ctx, "abc"))
	_, err = c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestTeacherCache_Expires(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.Set(ctx, &entity.TeacherProfile{ID: "abc"}))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestTeacherCache_CorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set(teacherKeyPrefix+"abc", "{not json"))

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.False(t, mr.Exists(teacherKeyPrefix+"abc"))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient("127.0.0.1:1", "", 0, logger.NewNop())
	assert.Error(t, err)
}
