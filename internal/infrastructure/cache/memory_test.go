package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/myskyn/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	products := []domain.Product{{ID: "p1", Name: "Toner", Category: "toner"}}
	err := c.Set(ctx, "store:products", products, time.Minute)
	require.NoError(t, err)

	value, err := c.Get(ctx, "store:products")
	require.NoError(t, err)

	cached, ok := value.([]domain.Product)
	require.True(t, ok, "snapshot should come back with its original type")
	assert.Equal(t, products, cached)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, err := c.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	err := c.Set(ctx, "key", "value", 10*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Get(ctx, "key")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = c.Get(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Exists(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	exists, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.Set(ctx, "key", "value", time.Minute))

	exists, err = c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCache_ExistsExpired(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", "value", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	exists, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	assert.Equal(t, 0, c.Size())

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	assert.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%5)
			_ = c.Set(ctx, key, n, time.Minute)
		}(i)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%5)
			_, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()
}
