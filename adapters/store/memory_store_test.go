package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/clickcha/core"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "id-1", `{"a":1}`, time.Minute))

	got, err := s.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestMemoryStore_DeleteReportsPresence(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "id-1", "v", time.Minute))

	present, err := s.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, present)

	// Idempotent: second delete is a no-op.
	present, err = s.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.SetClock(func() time.Time { return now })

	require.NoError(t, s.Set(ctx, "id-1", "v", 2*time.Minute))

	// Still alive just before the deadline.
	now = now.Add(119 * time.Second)
	_, err := s.Get(ctx, "id-1")
	require.NoError(t, err)

	// Gone after it.
	now = now.Add(2 * time.Second)
	_, err = s.Get(ctx, "id-1")
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)

	present, err := s.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, present)
}
