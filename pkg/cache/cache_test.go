package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestKeyIsOrderIndependentOverFileHashes(t *testing.T) {
	a := Key("/proj", []string{"h2", "h1"}, "v1")
	b := Key("/proj", []string{"h1", "h2"}, "v1")
	assert.Equal(t, a, b)
}

func TestKeyChangesWithAnalyzerVersion(t *testing.T) {
	a := Key("/proj", []string{"h1"}, "v1")
	b := Key("/proj", []string{"h1"}, "v2")
	assert.NotEqual(t, a, b)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	key := Key("/proj", []string{"h1"}, "v1")

	_, ok, err := store.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	entry := Entry{Result: types.FusedResult{ReadinessScore: 0.5}, WrittenAt: time.Now()}
	require.NoError(t, store.Put(key, entry))

	got, ok, err := store.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.5, got.Result.ReadinessScore, 1e-9)

	require.NoError(t, store.Delete(key))
	_, ok, err = store.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFreshRespectsTTL(t *testing.T) {
	now := time.Now()
	entry := Entry{WrittenAt: now.Add(-23 * time.Hour)}
	assert.True(t, Fresh(entry, 24*time.Hour, now))
	assert.False(t, Fresh(entry, 1*time.Hour, now))
}

func TestBadgerStoreInMemoryRoundTrip(t *testing.T) {
	store, err := OpenBadgerStore(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	key := Key("/proj", []string{"h1"}, "v1")
	entry := Entry{Result: types.FusedResult{ReadinessScore: 0.75}, WrittenAt: time.Now()}
	require.NoError(t, store.Put(key, entry))

	got, ok, err := store.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.75, got.Result.ReadinessScore, 1e-9)
}
