package dedupe_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/noble-deeds/backend/internal/dedupe"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func TestCacheRemember(t *testing.T) {
	cache := dedupe.NewCache(10, time.Minute)
	require.False(t, cache.Seen("alpha"))
	cache.Remember("alpha")
	require.True(t, cache.Seen("alpha"))
	require.Equal(t, 1, cache.Len())
}

func TestCacheTTLExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := dedupe.NewCache(10, time.Minute)
	cache.SetClock(clock.now)

	cache.Remember("beta")
	clock.t = clock.t.Add(30 * time.Second)
	require.True(t, cache.Seen("beta"))

	clock.t = clock.t.Add(31 * time.Second)
	require.False(t, cache.Seen("beta"))
}

func TestCacheCapacityEvictsOldest(t *testing.T) {
	cache := dedupe.NewCache(1, time.Minute)
	cache.Remember("first")
	cache.Remember("second")

	require.False(t, cache.Seen("first"))
	require.True(t, cache.Seen("second"))
}

func TestCacheClaim(t *testing.T) {
	cache := dedupe.NewCache(10, time.Minute)
	require.True(t, cache.Claim("gamma"))
	require.False(t, cache.Claim("gamma"))

	cache.Forget("gamma")
	require.True(t, cache.Claim("gamma"))
}

func TestCacheClaimConcurrent(t *testing.T) {
	cache := dedupe.NewCache(100, time.Minute)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cache.Claim("same-deed") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, wins)
}
