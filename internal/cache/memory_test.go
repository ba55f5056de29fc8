package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "postal_code:411001", []byte(`{"city":"Pune"}`), time.Hour)

	val, ok := m.Get(ctx, "postal_code:411001")
	require.True(t, ok)
	assert.Equal(t, `{"city":"Pune"}`, string(val))

	_, ok = m.Get(ctx, "postal_code:999999")
	assert.False(t, ok)
}

func TestMemory_ExpiryByTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Now()
	m.now = func() time.Time { return now }

	m.Set(ctx, "k", []byte("v"), 10*time.Minute)

	_, ok := m.Get(ctx, "k")
	assert.True(t, ok)

	// Advance the clock past the TTL
	now = now.Add(11 * time.Minute)
	_, ok = m.Get(ctx, "k")
	assert.False(t, ok)

	// Expired entry is dropped on read
	assert.Equal(t, 0, m.Len())
}

func TestMemory_ZeroTTLIsNotStored(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "k", []byte("v"), 0)
	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "a", []byte("1"), time.Hour)
	m.Set(ctx, "b", []byte("2"), time.Hour)
	require.Equal(t, 2, m.Len())

	m.Clear(ctx)
	assert.Equal(t, 0, m.Len())

	_, ok := m.Get(ctx, "a")
	assert.False(t, ok)
}

func TestMemory_OverwriteRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Now()
	m.now = func() time.Time { return now }

	m.Set(ctx, "k", []byte("v1"), 10*time.Minute)
	now = now.Add(9 * time.Minute)
	m.Set(ctx, "k", []byte("v2"), 10*time.Minute)

	now = now.Add(5 * time.Minute)
	val, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v2", string(val))
}
