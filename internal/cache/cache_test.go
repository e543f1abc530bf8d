package cache_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efaktura/internal/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := cache.NewMemoryStore(cache.WithClock(clock.Now))

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "units", []byte("[1]"), time.Minute))
	data, ok, err := store.Get(ctx, "units")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("[1]"), data)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := cache.NewMemoryStore(cache.WithClock(clock.Now))

	require.NoError(t, store.Set(ctx, "vat", []byte("x"), time.Minute))
	require.NoError(t, store.Set(ctx, "forever", []byte("y"), 0))

	clock.Advance(59 * time.Second)
	_, ok, _ := store.Get(ctx, "vat")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok, _ = store.Get(ctx, "vat")
	assert.False(t, ok)

	clock.Advance(365 * 24 * time.Hour)
	_, ok, _ = store.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, store.Set(ctx, "c", []byte("3"), 0))

	require.NoError(t, store.Delete(ctx, "a", "b", "nope"))
	for key, want := range map[string]bool{"a": false, "b": false, "c": true} {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, ok, key)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := cache.OpenSQLite(path, cache.WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, ok, err := store.Get(ctx, "companies")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "companies", []byte(`[{"bugetCompanyNumber":"1"}]`), time.Hour))
	data, ok, err := store.Get(ctx, "companies")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"bugetCompanyNumber":"1"}]`, string(data))

	// Overwrite keeps a single row and refreshes the value.
	require.NoError(t, store.Set(ctx, "companies", []byte(`[]`), time.Hour))
	data, _, err = store.Get(ctx, "companies")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	clock.Advance(2 * time.Hour)
	_, ok, err = store.Get(ctx, "companies")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "units", []byte("u"), 0))
	require.NoError(t, store.Delete(ctx, "units"))
	_, ok, err = store.Get(ctx, "units")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Delete(ctx))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	first, err := cache.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "vat", []byte("reasons"), time.Hour))
	require.NoError(t, first.Close())

	second, err := cache.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	data, ok, err := second.Get(ctx, "vat")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "reasons", string(data))
}

func TestRemember_FetchesOnce(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.NewMemoryStore(), zerolog.Nop())

	var calls int
	fetch := func(context.Context) ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	for i := 0; i < 3; i++ {
		data, err := c.Remember(ctx, "k", time.Hour, fetch)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Forget(ctx, "k"))
	_, err := c.Remember(ctx, "k", time.Hour, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemember_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	c := cache.New(nil, zerolog.Nop())
	boom := errors.New("boom")

	_, err := c.Remember(ctx, "k", time.Hour, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := c.Remember(ctx, "k", time.Hour, func(context.Context) ([]byte, error) {
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestRemember_ConcurrentCallersShareFetch(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.NewMemoryStore(), zerolog.Nop())

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("shared"), nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := c.Remember(ctx, "k", time.Hour, fetch)
			assert.NoError(t, err)
			results[i] = string(data)
		}(i)
	}

	// Let the goroutines pile up behind the first fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestRemember_CancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	c := cache.New(cache.NewMemoryStore(), zerolog.Nop())

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []byte("units"), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Remember(ctx, "k", time.Hour, fetch)
		done <- err
	}()

	<-started
	cancel()
	close(release)
	require.NoError(t, <-done)

	data, err := c.Remember(context.Background(), "k", time.Hour, fetch)
	require.NoError(t, err)
	assert.Equal(t, "units", string(data))
	assert.Equal(t, int32(1), calls.Load())
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("disk gone")
}

func (failingStore) Delete(context.Context, ...string) error { return nil }

func TestRemember_StoreFailureFallsThrough(t *testing.T) {
	c := cache.New(failingStore{}, zerolog.Nop())

	var calls int
	for i := 0; i < 2; i++ {
		data, err := c.Remember(context.Background(), "k", time.Hour, func(context.Context) ([]byte, error) {
			calls++
			return []byte("live"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "live", string(data))
	}
	assert.Equal(t, 2, calls)
}
