package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type MockResyncer struct {
	calls    atomic.Int32
	err      error
	panicMsg string

	mu        sync.Mutex
	deadlines []bool
}

func (m *MockResyncer) Resync(ctx context.Context) error {
	m.calls.Add(1)
	_, hasDeadline := ctx.Deadline()
	m.mu.Lock()
	m.deadlines = append(m.deadlines, hasDeadline)
	m.mu.Unlock()
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	return m.err
}

func runFor(t *testing.T, s *ResyncScheduler, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := s.Start(ctx)
	time.Sleep(d)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}

func TestResyncScheduler_TicksPeriodically(t *testing.T) {
	target := &MockResyncer{}

	runFor(t, NewResyncScheduler(target, 20*time.Millisecond, 0), 110*time.Millisecond)

	assert.GreaterOrEqual(t, target.calls.Load(), int32(3))
}

func TestResyncScheduler_EachTickHasADeadline(t *testing.T) {
	target := &MockResyncer{}

	runFor(t, NewResyncScheduler(target, 20*time.Millisecond, 10*time.Millisecond), 70*time.Millisecond)

	target.mu.Lock()
	defer target.mu.Unlock()
	assert.NotEmpty(t, target.deadlines)
	for _, has := range target.deadlines {
		assert.True(t, has)
	}
}

func TestResyncScheduler_KeepsRunningAfterErrors(t *testing.T) {
	target := &MockResyncer{err: errors.New("provider down")}

	runFor(t, NewResyncScheduler(target, 15*time.Millisecond, 0), 80*time.Millisecond)

	assert.GreaterOrEqual(t, target.calls.Load(), int32(2))
}

func TestResyncScheduler_SurvivesPanics(t *testing.T) {
	target := &MockResyncer{panicMsg: "boom"}

	runFor(t, NewResyncScheduler(target, 15*time.Millisecond, 0), 80*time.Millisecond)

	assert.GreaterOrEqual(t, target.calls.Load(), int32(2))
}

func TestResyncScheduler_StopsBeforeFirstTick(t *testing.T) {
	target := &MockResyncer{}

	runFor(t, NewResyncScheduler(target, time.Hour, 0), 10*time.Millisecond)

	assert.Equal(t, int32(0), target.calls.Load())
}

func TestNewResyncScheduler_Defaults(t *testing.T) {
	s := NewResyncScheduler(&MockResyncer{}, 0, 0)
	assert.Equal(t, DefaultInterval, s.interval)
	assert.Equal(t, DefaultInterval, s.timeout)

	s = NewResyncScheduler(&MockResyncer{}, time.Second, time.Minute)
	assert.Equal(t, time.Second, s.timeout, "tick timeout must not exceed the interval")
}
