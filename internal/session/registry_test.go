package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahidhasan98/changelog-viewer/internal/errors"
)

func newTestRegistry(ttl time.Duration, max int) (*Registry, *time.Time) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(func() *Session {
		return New(&fakeGate{}, newFakeFetcher(), nil)
	}, ttl, max, nil)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r, _ := newTestRegistry(time.Hour, 0)

	id, created, err := r.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, created, got)
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Delete(id))
	assert.False(t, r.Delete(id))

	_, err = r.Get(id)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionNotFound))
}

func TestRegistry_MaxSessions(t *testing.T) {
	r, _ := newTestRegistry(time.Hour, 2)

	for i := 0; i < 2; i++ {
		_, _, err := r.Create()
		require.NoError(t, err)
	}

	_, _, err := r.Create()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeServiceUnavailable))
}

func TestRegistry_Expiry(t *testing.T) {
	r, now := newTestRegistry(time.Minute, 1)

	idle, _, err := r.Create()
	require.NoError(t, err)

	*now = now.Add(30 * time.Second)
	_, err = r.Get(idle)
	require.NoError(t, err, "Get refreshes the idle timer")

	*now = now.Add(45 * time.Second)
	_, err = r.Get(idle)
	require.NoError(t, err)

	*now = now.Add(2 * time.Minute)
	_, err = r.Get(idle)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionNotFound))

	// the expired session no longer counts against the limit
	_, _, err = r.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Evict(t *testing.T) {
	r, now := newTestRegistry(time.Minute, 0)

	for i := 0; i < 3; i++ {
		_, _, err := r.Create()
		require.NoError(t, err)
	}
	assert.Zero(t, r.Evict())

	*now = now.Add(2 * time.Minute)
	assert.Equal(t, 3, r.Evict())
	assert.Zero(t, r.Len())
}
