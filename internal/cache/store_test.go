package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bluele/gcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Hub   string `json:"hub"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*ResponseCache, gcache.FakeClock) {
	t.Helper()
	clock := gcache.NewFakeClock()
	return NewResponseCache(16, DefaultTTL, WithClock(clock)), clock
}

func TestNewResponseCache_Defaults(t *testing.T) {
	c := NewResponseCache(0, 0)

	assert.Equal(t, DefaultTTL, c.TTL())
	assert.Equal(t, 0, c.Len())
}

func TestResponseCache_PutThenGet(t *testing.T) {
	c, _ := newTestCache(t)

	stored, err := c.Put("analytics:NDLS", payload{Hub: "NDLS", Count: 3}, 0)
	require.NoError(t, err)

	got, ok := c.Get("analytics:NDLS")
	require.True(t, ok)
	assert.Equal(t, stored, got)
	assert.JSONEq(t, `{"hub":"NDLS","count":3}`, string(got))
}

func TestResponseCache_GetMissing(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok := c.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestResponseCache_EntryExpiresAfterTTL(t *testing.T) {
	c, clock := newTestCache(t)

	_, err := c.Put("k", payload{Count: 1}, time.Minute)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry must be visible before expiry")

	clock.Advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry must be absent after expiry")
}

func TestResponseCache_DefaultTTLApplies(t *testing.T) {
	c, clock := newTestCache(t)

	_, err := c.Put("k", payload{Count: 1}, 0)
	require.NoError(t, err)

	clock.Advance(DefaultTTL - time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestResponseCache_LastWriteWins(t *testing.T) {
	c, _ := newTestCache(t)

	_, _ = c.Put("k", payload{Count: 1}, 0)
	_, _ = c.Put("k", payload{Count: 2}, 0)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"hub":"","count":2}`, string(got))
}

func TestResponseCache_StoresSnapshot(t *testing.T) {
	c, _ := newTestCache(t)
	value := &payload{Hub: "NDLS", Count: 1}

	_, err := c.Put("k", value, 0)
	require.NoError(t, err)
	value.Count = 42

	got, _ := c.Get("k")
	assert.JSONEq(t, `{"hub":"NDLS","count":1}`, string(got))

	got[0] = 'X'
	again, _ := c.Get("k")
	assert.Equal(t, byte('{'), again[0], "callers must not be able to corrupt the entry")
}

func TestResponseCache_PutUnmarshalable(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Put("k", make(chan int), 0)
	assert.Error(t, err)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestResponseCache_Clear(t *testing.T) {
	c, _ := newTestCache(t)
	for i := 0; i < 5; i++ {
		_, _ = c.Put(fmt.Sprintf("k%d", i), payload{Count: i}, 0)
	}
	require.Equal(t, 5, c.Len())

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("k0")
	assert.False(t, ok)
}

func TestResponseCache_SizeBound(t *testing.T) {
	c := NewResponseCache(2, time.Minute)

	_, _ = c.Put("a", 1, 0)
	_, _ = c.Put("b", 2, 0)
	_, _ = c.Put("c", 3, 0)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "least recently used entry should be evicted")
}

func TestKeys_AreDeterministicAndNamespaced(t *testing.T) {
	assert.Equal(t, "trains:Delhi:2:3", TrainsKey("Delhi", 2, 3))
	assert.Equal(t, TrainsKey(" Delhi ", 2, 3), TrainsKey("Delhi", 2, 3))
	assert.Equal(t, "routes:12951:Delhi", RoutesKey("12951", "Delhi"))
	assert.Equal(t, "analytics:Delhi", AnalyticsKey("Delhi"))
	assert.Equal(t, "alerts:Delhi:1:4", AlertsKey("Delhi", 1, 4))
	assert.Equal(t, "recommendations:", RecommendationsKey())

	assert.NotEqual(t, TrainsKey("Delhi", 1, 4), AlertsKey("Delhi", 1, 4))
	assert.Equal(t, KindAlerts, KindOf(AlertsKey("Delhi", 1, 4)))
	assert.Equal(t, KindTrains, KindOf(TrainsKey("Delhi", 1, 4)))
}

func TestKeys_SeparatorInsidePartsDoesNotCollide(t *testing.T) {
	assert.NotEqual(t, RoutesKey("a:b", "c"), RoutesKey("a", "b:c"))
	assert.NotEqual(t, AnalyticsKey("x:1"), AnalyticsKey("x%3A1"))
	assert.Equal(t, "routes:a%3Ab:c", RoutesKey("a:b", "c"))
	assert.Equal(t, KindRoutes, KindOf(RoutesKey("a:b", "c")))
}

func TestResponseCache_Concurrency(t *testing.T) {
	c := NewResponseCache(128, time.Minute)

	var wg sync.WaitGroup
	const numGoroutines = 50
	for i := 0; i < numGoroutines; i++ {
		wg.Add(3)
		go func(idx int) {
			defer wg.Done()
			_, _ = c.Put(fmt.Sprintf("k%d", idx%10), payload{Count: idx}, 0)
		}(i)
		go func(idx int) {
			defer wg.Done()
			_, _ = c.Get(fmt.Sprintf("k%d", idx%10))
		}(i)
		go func() {
			defer wg.Done()
			_ = c.Len()
		}()
	}
	wg.Wait()
}

type countingClearer struct {
	calls atomic.Int32
}

func (c *countingClearer) Clear() {
	c.calls.Add(1)
}

func TestStartSweepScheduler_ClearsPeriodically(t *testing.T) {
	clearer := &countingClearer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := StartSweepScheduler(ctx, clearer, 20*time.Millisecond)
	time.Sleep(90 * time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, clearer.calls.Load(), int32(2))
}

func TestStartSweepScheduler_StopsOnCancel(t *testing.T) {
	clearer := &countingClearer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := StartSweepScheduler(ctx, clearer, time.Hour)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
	assert.Equal(t, int32(0), clearer.calls.Load())
}

type panickingClearer struct {
	calls atomic.Int32
}

func (p *panickingClearer) Clear() {
	p.calls.Add(1)
	panic("boom")
}

func TestStartSweepScheduler_SurvivesPanics(t *testing.T) {
	clearer := &panickingClearer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := StartSweepScheduler(ctx, clearer, 15*time.Millisecond)
	time.Sleep(70 * time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, clearer.calls.Load(), int32(2))
}
