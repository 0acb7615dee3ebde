package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahlenlotto/lotto-services/internal/comm"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	state, err := s.Get(ctx, "ABCDEFGH")
	require.NoError(t, err)
	assert.Nil(t, state, "unknown seed reads as absent")

	current := 42
	in := &comm.GameState{
		DrawnNumbers:  []int{1, 2, 42},
		CurrentNumber: &current,
		LastUpdate:    1234,
	}
	require.NoError(t, s.Put(ctx, "ABCDEFGH", in))

	state, err = s.Get(ctx, "ABCDEFGH")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, []int{1, 2, 42}, state.DrawnNumbers)
	require.NotNil(t, state.CurrentNumber)
	assert.Equal(t, 42, *state.CurrentNumber)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "ABCDEFGH", &comm.GameState{DrawnNumbers: []int{1}}))
	require.NoError(t, s.Delete(ctx, "ABCDEFGH"))

	state, err := s.Get(ctx, "ABCDEFGH")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put(ctx, "OLDSEED1", &comm.GameState{DrawnNumbers: []int{1}}))

	// just before expiry the record is still readable
	s.now = func() time.Time { return now.Add(TTL - time.Minute) }
	state, err := s.Get(ctx, "OLDSEED1")
	require.NoError(t, err)
	assert.NotNil(t, state)

	// past expiry it reads as absent
	s.now = func() time.Time { return now.Add(TTL + time.Minute) }
	state, err = s.Get(ctx, "OLDSEED1")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStoreSweepOnWrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put(ctx, "OLDSEED1", &comm.GameState{DrawnNumbers: []int{1}}))

	// a write more than 24h later sweeps the stale entry out of the map
	s.now = func() time.Time { return now.Add(TTL + time.Minute) }
	require.NoError(t, s.Put(ctx, "NEWSEED1", &comm.GameState{DrawnNumbers: []int{2}}))

	s.mu.Lock()
	_, stale := s.entries["OLDSEED1"]
	s.mu.Unlock()
	assert.False(t, stale, "sweep should remove expired entries")
}
