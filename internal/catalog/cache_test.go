package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stillhouse/site/internal/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls   atomic.Int32
	err     error
	delay   time.Duration
	catalog []shopify.Product
}

func (f *countingFetcher) Configured() bool { return true }

func (f *countingFetcher) Products(ctx context.Context) ([]shopify.Product, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

func TestCache_HitsWithinTTL(t *testing.T) {
	src := &countingFetcher{catalog: []shopify.Product{{Handle: "navy"}}}
	c := New(src, time.Minute)

	for i := 0; i < 3; i++ {
		products, err := c.Products(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 1)
	}
	assert.EqualValues(t, 1, src.calls.Load())

	require.NoError(t, c.Invalidate(context.Background()))
	_, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestCache_Expires(t *testing.T) {
	src := &countingFetcher{}
	c := New(src, 30*time.Millisecond)

	_, _ = c.Products(context.Background())
	time.Sleep(80 * time.Millisecond)
	_, _ = c.Products(context.Background())
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestCache_ZeroTTLAlwaysFetches(t *testing.T) {
	src := &countingFetcher{}
	c := New(src, 0)

	_, _ = c.Products(context.Background())
	_, _ = c.Products(context.Background())
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	src := &countingFetcher{err: errors.New("upstream 502")}
	c := New(src, time.Minute)

	_, err := c.Products(context.Background())
	assert.Error(t, err)

	src.err = nil
	_, err = c.Products(context.Background())
	assert.NoError(t, err)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestCache_CoalescesConcurrentMisses(t *testing.T) {
	src := &countingFetcher{delay: 50 * time.Millisecond}
	c := New(src, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Products(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, src.calls.Load())
}

// slowFetcher honours ctx the way the Storefront client does.
type slowFetcher struct {
	calls   atomic.Int32
	started chan struct{}
	delay   time.Duration
}

func (f *slowFetcher) Configured() bool { return true }

func (f *slowFetcher) Products(ctx context.Context) ([]shopify.Product, error) {
	if f.calls.Add(1) == 1 {
		close(f.started)
	}
	select {
	case <-time.After(f.delay):
		return []shopify.Product{{Handle: "navy"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &slowFetcher{started: make(chan struct{}), delay: 100 * time.Millisecond}
	c := New(src, time.Minute)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Products(firstCtx)
		firstErr <- err
	}()
	<-src.started

	type result struct {
		products []shopify.Product
		err      error
	}
	second := make(chan result, 1)
	go func() {
		products, err := c.Products(context.Background())
		second <- result{products, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancelFirst()

	assert.ErrorIs(t, <-firstErr, context.Canceled)
	res := <-second
	require.NoError(t, res.err)
	require.Len(t, res.products, 1)
	assert.EqualValues(t, 1, src.calls.Load())

	// The detached fetch still filled the cache.
	_, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestCache_Configured(t *testing.T) {
	assert.False(t, New(nil, time.Minute).Configured())
	assert.True(t, New(&countingFetcher{}, time.Minute).Configured())
	assert.False(t, New(shopify.New(shopify.Config{}), time.Minute).Configured())
}
