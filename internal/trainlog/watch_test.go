package trainlog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type progressListerStub struct {
	mu        sync.Mutex
	snapshots [][]ProgressDayLog
	err       error
	calls     int
}

func (s *progressListerStub) ListProgress(_ context.Context, _ ListParams) ([]ProgressDayLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	i := s.calls - 1
	if i >= len(s.snapshots) {
		i = len(s.snapshots) - 1
	}
	return s.snapshots[i], nil
}

func (s *progressListerStub) callsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestWatcher_Watch(t *testing.T) {
	lister := &progressListerStub{
		snapshots: [][]ProgressDayLog{
			{{PlanID: "plan-1", DateKey: "20250310"}},
			{{PlanID: "plan-1", DateKey: "20250310"}, {PlanID: "plan-1", DateKey: "20250311"}},
		},
	}
	watcher := NewWatcher(lister, 10*time.Millisecond)

	sub := watcher.Watch(context.Background(), "plan-1")

	// first snapshot is published right away
	select {
	case snapshot := <-sub.Updates:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "20250310", snapshot[0].DateKey)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the first snapshot")
	}

	// follow-up polls deliver the grown snapshot
	deadline := time.After(time.Second)
	for {
		var snapshot []ProgressDayLog
		select {
		case snapshot = <-sub.Updates:
		case <-deadline:
			t.Fatal("timed out waiting for the second snapshot")
		}
		if len(snapshot) == 2 {
			assert.Equal(t, "20250311", snapshot[1].DateKey)
			break
		}
	}

	assert.Equal(t, 1, watcher.SubscriptionsCount())
	sub.Close()
	assert.Equal(t, 0, watcher.SubscriptionsCount())

	// channel is closed after Close
	_, open := <-sub.Updates
	assert.False(t, open)
}

func TestWatcher_Watch_LatestWins(t *testing.T) {
	lister := &progressListerStub{
		snapshots: [][]ProgressDayLog{
			{{PlanID: "plan-1", DateKey: "20250310"}},
			{{PlanID: "plan-1", DateKey: "20250310"}, {PlanID: "plan-1", DateKey: "20250311"}},
			{
				{PlanID: "plan-1", DateKey: "20250310"},
				{PlanID: "plan-1", DateKey: "20250311"},
				{PlanID: "plan-1", DateKey: "20250312"},
			},
		},
	}
	watcher := NewWatcher(lister, time.Millisecond)

	sub := watcher.Watch(context.Background(), "plan-1")
	defer sub.Close()

	// let a few polls pass without reading, slow consumer style
	require.Eventually(t, func() bool {
		return lister.callsCount() >= 3
	}, time.Second, time.Millisecond)

	snapshot := <-sub.Updates
	assert.GreaterOrEqual(t, len(snapshot), 1)
	assert.LessOrEqual(t, len(snapshot), 3)
}

func TestWatcher_Watch_ListErrorsSkipped(t *testing.T) {
	lister := &progressListerStub{err: errors.New("pg down")}
	watcher := NewWatcher(lister, 5*time.Millisecond)

	sub := watcher.Watch(context.Background(), "plan-1")

	select {
	case <-sub.Updates:
		t.Fatal("no snapshot expected on repo errors")
	case <-time.After(30 * time.Millisecond):
	}

	sub.Close()
}

func TestWatcher_Watch_ContextCancel(t *testing.T) {
	lister := &progressListerStub{
		snapshots: [][]ProgressDayLog{{{PlanID: "plan-1", DateKey: "20250310"}}},
	}
	watcher := NewWatcher(lister, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	sub := watcher.Watch(ctx, "plan-1")
	cancel()

	require.Eventually(t, func() bool {
		return watcher.SubscriptionsCount() == 0
	}, time.Second, time.Millisecond)

	// Close is still safe after cancellation drained the poller
	sub.Close()
}

func TestNewWatcher_DefaultPollInterval(t *testing.T) {
	watcher := NewWatcher(&progressListerStub{}, 0)
	assert.Equal(t, 15*time.Second, watcher.pollInterval)
}
