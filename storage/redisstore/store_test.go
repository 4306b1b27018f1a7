package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/session"
)

func newStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), core.SessionConfig{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, ttl), mr
}

func TestKey(t *testing.T) {
	assert.Equal(t, "session:abc", key("abc"))
}

func TestConnect_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), core.SessionConfig{RedisAddr: addr})
	assert.Error(t, err)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	st, mr := newStore(t, time.Minute)

	s := session.New()
	require.NoError(t, st.Create(ctx, s))
	assert.Error(t, st.Create(ctx, s), "ids are unique")
	assert.True(t, mr.Exists(key(s.ID)))
	assert.Equal(t, time.Minute, mr.TTL(key(s.ID)))

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Len(t, got.Conversation.Messages, 1)

	boom := errors.New("boom")
	_, err = st.Update(ctx, s.ID, func(s *session.Session) error {
		s.Plan = []string{"1"}
		return boom
	})
	assert.Equal(t, boom, err)
	got, err = st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Plan, "a failing update is not saved")

	got, err = st.Update(ctx, s.ID, func(s *session.Session) error {
		s.Dismissed = append(s.Dismissed, 3)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got.Dismissed)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.Equal(t, session.ErrNotFound, err)
	_, err = st.Update(ctx, s.ID, func(*session.Session) error { return nil })
	assert.Equal(t, session.ErrNotFound, err)
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	st, mr := newStore(t, time.Minute)

	s := session.New()
	require.NoError(t, st.Create(ctx, s))

	mr.FastForward(30 * time.Second)
	_, err := st.Update(ctx, s.ID, func(*session.Session) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(key(s.ID)), "writes restart the TTL")

	mr.FastForward(time.Minute)
	_, err = st.Get(ctx, s.ID)
	assert.Equal(t, session.ErrNotFound, err)
}

func TestSessionStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t, time.Minute)

	s := session.New()
	require.NoError(t, st.Create(ctx, s))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := st.Update(ctx, s.ID, func(s *session.Session) error {
				s.Dismissed = append(s.Dismissed, i)
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, got.Dismissed, "no update is lost")
}

func TestSessionStore_Conflict(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t, time.Minute)

	s := session.New()
	require.NoError(t, st.Create(ctx, s))

	// another writer changes the session during every attempt
	attempts := 0
	_, err := st.Update(ctx, s.ID, func(cur *session.Session) error {
		attempts++
		other := *cur
		other.Dismissed = []int{attempts}
		data, err := json.Marshal(other)
		require.NoError(t, err)
		return st.client.Set(ctx, key(s.ID), data, time.Minute).Err()
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, session.ErrConflict), err.Error())
	assert.Equal(t, maxTxAttempts, attempts)

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{maxTxAttempts}, got.Dismissed, "only the other writer's changes are kept")
}
