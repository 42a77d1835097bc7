package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contexta-app/contexta/pkg/ratelimit"
)

func TestMemoryStoreRecordIfAllowed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("records until limit reached", func(t *testing.T) {
		t.Parallel()

		store := ratelimit.NewMemoryStore()
		defer store.Close()

		now := time.Now()

		for i := range 3 {
			allowed, count, err := store.RecordIfAllowed(ctx, "key", now, time.Minute, 3, 1)
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, int64(i+1), count)
		}

		allowed, count, err := store.RecordIfAllowed(ctx, "key", now, time.Minute, 3, 1)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, int64(3), count)
	})

	t.Run("expired entries do not count", func(t *testing.T) {
		t.Parallel()

		store := ratelimit.NewMemoryStore()
		defer store.Close()

		old := time.Now().Add(-2 * time.Minute)
		allowed, _, err := store.RecordIfAllowed(ctx, "key", old, time.Minute, 1, 1)
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, count, err := store.RecordIfAllowed(ctx, "key", time.Now(), time.Minute, 1, 1)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, int64(1), count)
	})

	t.Run("concurrent access never exceeds limit", func(t *testing.T) {
		t.Parallel()

		store := ratelimit.NewMemoryStore()
		defer store.Close()

		const limit = 10
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowedCount := 0

		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				allowed, _, err := store.RecordIfAllowed(ctx, "key", time.Now(), time.Minute, limit, 1)
				require.NoError(t, err)
				if allowed {
					mu.Lock()
					allowedCount++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, limit, allowedCount)
	})
}

func TestMemoryStoreCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := ratelimit.NewMemoryStore()
	defer store.Close()

	count, err := store.Count(ctx, "missing", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, _, err = store.RecordIfAllowed(ctx, "key", time.Now(), time.Minute, 5, 2)
	require.NoError(t, err)

	count, err = store.Count(ctx, "key", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := ratelimit.NewMemoryStore()
	defer store.Close()

	_, _, err := store.RecordIfAllowed(ctx, "key", time.Now(), time.Minute, 5, 1)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "key"))

	count, err := store.Count(ctx, "key", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, count)
}
