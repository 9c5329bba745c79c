package trainlog

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type progressLogsLister interface {
	ListProgress(ctx context.Context, params ListParams) ([]ProgressDayLog, error)
}

// Subscription delivers day log progress snapshots for a single plan.
// The channel carries the latest snapshot only, stale ones get dropped.
type Subscription struct {
	Updates <-chan []ProgressDayLog

	updates chan []ProgressDayLog
	cancel  context.CancelFunc
	done    chan struct{}
}

func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

type Watcher struct {
	repo         progressLogsLister
	pollInterval time.Duration

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewWatcher(repo progressLogsLister, pollInterval time.Duration) *Watcher {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Second
	}
	return &Watcher{
		repo:         repo,
		pollInterval: pollInterval,
		subs:         map[*Subscription]struct{}{},
	}
}

// Watch starts polling day logs for the given plan and returns a subscription
// with a buffered updates channel. Call Close to stop the polling goroutine.
func (w *Watcher) Watch(ctx context.Context, planID string) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		updates: make(chan []ProgressDayLog, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	sub.Updates = sub.updates

	w.mu.Lock()
	w.subs[sub] = struct{}{}
	w.mu.Unlock()

	go w.poll(subCtx, planID, sub)

	return sub
}

func (w *Watcher) poll(ctx context.Context, planID string, sub *Subscription) {
	defer func() {
		w.mu.Lock()
		delete(w.subs, sub)
		w.mu.Unlock()
		close(sub.updates)
		close(sub.done)
	}()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.publish(ctx, planID, sub)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.publish(ctx, planID, sub)
		}
	}
}

func (w *Watcher) publish(ctx context.Context, planID string, sub *Subscription) {
	snapshot, err := w.repo.ListProgress(ctx, ListParams{PlanID: planID})
	if err != nil {
		if ctx.Err() == nil {
			log.Errorf("watcher: list progress for plan [%s]: %s", planID, err)
		}
		return
	}

	// drop the stale snapshot, if any, then push the fresh one
	select {
	case <-sub.updates:
	default:
	}
	select {
	case sub.updates <- snapshot:
	default:
	}
}

func (w *Watcher) SubscriptionsCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}
