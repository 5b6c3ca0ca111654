package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/internal/metrics"
	"github.com/limbo/coco/pkg/entity"
)

// pendingQueue holds remote writes not acknowledged yet. Completions keep
// their order, daily flags keep only the last value per practice and state
// saves collapse into one.
type pendingQueue struct {
	completions []entity.CompletionEvent
	daily       map[int64]bool
	save        bool
	// bumped on every markSave so a drain can tell if state changed meanwhile
	version uint64
}

func newPendingQueue() pendingQueue {
	return pendingQueue{
		completions: make([]entity.CompletionEvent, 0),
		daily:       make(map[int64]bool),
	}
}

func (q *pendingQueue) markSave() {
	q.save = true
	q.version++
}

func (q *pendingQueue) empty() bool {
	return len(q.completions) == 0 && len(q.daily) == 0 && !q.save
}

func (q *pendingQueue) len() int {
	n := len(q.completions) + len(q.daily)
	if q.save {
		n++
	}
	return n
}

func (q *pendingQueue) dropPractice(practiceID int64) {
	delete(q.daily, practiceID)
	kept := q.completions[:0]
	for _, ev := range q.completions {
		if ev.PracticeID != practiceID {
			kept = append(kept, ev)
		}
	}
	q.completions = kept
}

// removeCompletion drops an acknowledged event. Events are acknowledged in
// order, so it is normally the head.
func (q *pendingQueue) removeCompletion(ev entity.CompletionEvent) {
	for i := range q.completions {
		if q.completions[i].ID == ev.ID {
			q.completions = append(q.completions[:i], q.completions[i+1:]...)
			return
		}
	}
}

// Pending reports the number of remote writes waiting in the queue.
func (e *PracticeEngine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending.len()
}

// Flush drains the pending queue to the remote store: completions first,
// then daily flags, then the state save. It stops at the first transient
// failure, which marks the engine unsynced and wraps ErrPersistence.
func (e *PracticeEngine) Flush(ctx context.Context) error {
	e.flushMu.Lock()
	defer e.flushMu.Unlock()
	return e.flushLocked(ctx)
}

// flushLocked expects flushMu to be held.
func (e *PracticeEngine) flushLocked(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.SyncDuration.Observe(time.Since(start).Seconds())
	}()

	err := e.drain(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.unsynced = true
		e.lastErr = err
		if e.loaded {
			e.persistLocked()
		}
		e.log.Warn("remote sync failed", slog.String("error", err.Error()), slog.Int("pending", e.pending.len()))
		return fmt.Errorf("%w: %s", errorvalues.ErrPersistence, err.Error())
	}
	if !e.stale {
		e.unsynced = false
		e.lastErr = nil
	}
	if e.loaded {
		e.persistLocked()
	}
	return nil
}

func (e *PracticeEngine) drain(ctx context.Context) error {
	e.mu.Lock()
	completions := append([]entity.CompletionEvent(nil), e.pending.completions...)
	e.mu.Unlock()
	for _, ev := range completions {
		err := e.call(ctx, func(ctx context.Context) error {
			return e.gateway.RecordCompletion(ctx, &ev)
		})
		if err != nil {
			if !errors.Is(err, errorvalues.ErrPracticeNotFound) {
				metrics.SyncFailures.WithLabelValues("completion").Inc()
				return err
			}
			e.log.Warn("dropping completion of missing practice",
				slog.String("completion_id", ev.ID.String()),
				slog.Int64("practice_id", ev.PracticeID))
		}
		e.mu.Lock()
		e.pending.removeCompletion(ev)
		e.mu.Unlock()
	}

	e.mu.Lock()
	ids := make([]int64, 0, len(e.pending.daily))
	flags := make(map[int64]bool, len(e.pending.daily))
	for id, isDaily := range e.pending.daily {
		ids = append(ids, id)
		flags[id] = isDaily
	}
	e.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		isDaily := flags[id]
		err := e.call(ctx, func(ctx context.Context) error {
			return e.gateway.SetDailyFlag(ctx, e.uid, id, isDaily)
		})
		if err != nil {
			if !errors.Is(err, errorvalues.ErrPracticeNotFound) {
				metrics.SyncFailures.WithLabelValues("daily").Inc()
				return err
			}
			e.log.Warn("dropping daily flag of missing practice", slog.Int64("practice_id", id))
		}
		e.mu.Lock()
		// a newer value may have been queued during the call
		if v, ok := e.pending.daily[id]; ok && v == isDaily {
			delete(e.pending.daily, id)
		}
		e.mu.Unlock()
	}

	e.mu.Lock()
	if !e.pending.save {
		e.mu.Unlock()
		return nil
	}
	version := e.pending.version
	snapshot := e.snapshotLocked()
	e.mu.Unlock()
	err := e.call(ctx, func(ctx context.Context) error {
		return e.gateway.SaveUserState(ctx, e.uid, snapshot)
	})
	if err != nil {
		metrics.SyncFailures.WithLabelValues("save").Inc()
		return err
	}
	e.mu.Lock()
	if e.pending.version == version {
		e.pending.save = false
	}
	e.mu.Unlock()
	return nil
}

func (e *PracticeEngine) call(ctx context.Context, f func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.SyncTimeout)
	defer cancel()
	return f(callCtx)
}

func (e *PracticeEngine) kick() {
	select {
	case e.kickCh <- struct{}{}:
	default:
	}
}

// Start runs the background sync loop until ctx is done or Close is called.
// Calling it twice has no effect.
func (e *PracticeEngine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.stopLoop != nil || e.closed {
		e.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	e.stopLoop = cancel
	e.loopDone = make(chan struct{})
	done := e.loopDone
	e.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(e.cfg.RetryInterval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-e.kickCh:
			case <-ticker.C:
				if e.Pending() == 0 {
					continue
				}
			}
			if err := e.Flush(loopCtx); err != nil {
				if loopCtx.Err() != nil {
					return
				}
				e.log.Debug("sync postponed", slog.String("error", err.Error()))
			}
		}
	}()
}

// Close stops the sync loop and makes a last attempt to drain the queue.
// Whatever stays pending is kept in the local cache.
func (e *PracticeEngine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	stop, done := e.stopLoop, e.loopDone
	e.mu.Unlock()
	if stop != nil {
		stop()
		<-done
	}
	if e.Pending() == 0 {
		return nil
	}
	return e.Flush(context.Background())
}
