package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/internal/metrics"
	"github.com/limbo/coco/pkg/entity"
)

// Refresh pushes pending writes and merges the remote state into the engine.
// The remote store wins on conflict; a daily flag known only locally
// survives and is queued for the remote store. Writes still queued are newer
// than anything remote and win over it. When the remote store is unreachable
// the engine keeps working from the local cache and stays unsynced until a
// later Refresh succeeds; the returned error then wraps ErrPersistence.
func (e *PracticeEngine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errorvalues.ErrEngineClosed
	}
	if !e.loaded {
		e.loadCacheLocked()
	}
	e.mu.Unlock()

	// writes acknowledged between load and merge would lose to the older remote state
	e.flushMu.Lock()
	defer e.flushMu.Unlock()

	if err := e.flushLocked(ctx); err != nil {
		// Flush has recorded the cause already
		e.fallback(nil)
		return err
	}

	var state *entity.UserState
	err := e.call(ctx, func(ctx context.Context) error {
		var err error
		state, err = e.gateway.LoadUserState(ctx, e.uid)
		return err
	})
	var remoteToday []entity.CompletionEvent
	if err == nil {
		from, to := e.dayBounds()
		err = e.call(ctx, func(ctx context.Context) error {
			var err error
			remoteToday, err = e.gateway.ListCompletions(ctx, e.uid, from, to)
			return err
		})
	}
	if err != nil {
		metrics.SyncFailures.WithLabelValues("load").Inc()
		e.fallback(err)
		return fmt.Errorf("%w: %s", errorvalues.ErrPersistence, err.Error())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.mergeLocked(state, remoteToday)
	e.stale = false
	e.unsynced = false
	e.lastErr = nil
	e.touchLocked()
	e.log.Debug("state refreshed",
		slog.Int("practices", len(e.practices)),
		slog.Int("pending", e.pending.len()),
	)
	return nil
}

func (e *PracticeEngine) loadCacheLocked() {
	cached, err := e.cache.Load(e.uid)
	if err != nil {
		metrics.CacheErrors.WithLabelValues("load").Inc()
		e.log.Warn("local cache load failed", slog.String("error", err.Error()))
	}
	if cached != nil {
		e.restoreLocked(cached)
	}
	e.loaded = true
}

func (e *PracticeEngine) fallback(cause error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stale = true
	e.unsynced = true
	if cause != nil {
		e.lastErr = cause
	}
	if len(e.practices) == 0 {
		for _, p := range e.cfg.Fallback {
			up := entity.UserPractice{Practice: p}
			e.practices[p.ID] = cloneUserPractice(&up)
		}
	}
	attrs := []any{}
	if e.lastErr != nil {
		attrs = append(attrs, slog.String("error", e.lastErr.Error()))
	}
	e.log.Warn("remote store unreachable, working from local state", attrs...)
}

func (e *PracticeEngine) dayBounds() (time.Time, time.Time) {
	now := e.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.cfg.Location)
	return start, start.AddDate(0, 0, 1)
}

func (e *PracticeEngine) hasUserDataLocked() bool {
	if !e.pending.empty() || e.progress.TotalCompletions > 0 || len(e.progress.Achievements) > 0 {
		return true
	}
	for _, p := range e.practices {
		if p.IsDaily || p.Streak > 0 || p.LastCompletedOn != "" {
			return true
		}
	}
	return false
}

func (e *PracticeEngine) mergeLocked(state *entity.UserState, remoteToday []entity.CompletionEvent) {
	if state == nil {
		state = &entity.UserState{}
	}
	firstUse := state.Empty() && !e.hasUserDataLocked()
	local := e.practices
	queuedSave := e.pending.save

	merged := make(map[int64]*entity.UserPractice, len(state.Practices))
	for _, p := range state.Practices {
		up := &entity.UserPractice{Practice: p}
		lp, hasLocal := local[p.ID]
		if rs, ok := state.PracticeStates[p.ID]; ok {
			up.IsDaily = rs.IsDaily
			up.Streak = rs.Streak
			up.LastCompletedOn = rs.LastCompletedOn
		} else if hasLocal {
			up.IsDaily = lp.IsDaily
			up.Streak = lp.Streak
			up.LastCompletedOn = lp.LastCompletedOn
			if lp.IsDaily {
				if _, queued := e.pending.daily[p.ID]; !queued {
					e.pending.daily[p.ID] = true
				}
			}
			if lp.Streak > 0 || lp.LastCompletedOn != "" {
				queuedSave = true
			}
		}
		if hasLocal && e.pending.save {
			up.Streak = lp.Streak
			up.LastCompletedOn = lp.LastCompletedOn
		}
		if v, ok := e.pending.daily[p.ID]; ok {
			up.IsDaily = v
		}
		merged[p.ID] = cloneUserPractice(up)
	}
	// queued flags of practices the remote store no longer shows are dead
	for id := range e.pending.daily {
		if _, ok := merged[id]; !ok {
			delete(e.pending.daily, id)
		}
	}

	switch {
	case e.pending.save:
	case state.Progress != nil:
		e.progress = cloneProgress(*state.Progress)
		e.progress.Level = LevelFor(e.progress.TotalPoints)
		e.progress.NextLevelPoints = NextLevelPoints(e.progress.Level)
	case e.progress.TotalCompletions > 0:
		queuedSave = true
	default:
		e.progress = NewProgress()
	}

	if firstUse {
		applied := make([]int64, 0, len(e.cfg.DefaultDaily))
		for _, id := range e.cfg.DefaultDaily {
			p, ok := merged[id]
			if !ok || p.IsDaily {
				continue
			}
			p.IsDaily = true
			e.pending.daily[id] = true
			applied = append(applied, id)
		}
		if len(applied) > 0 {
			e.log.Info("default daily set applied", slog.Any("practices", applied))
		}
	}
	e.practices = merged
	if queuedSave && !e.pending.save {
		e.pending.markSave()
	}

	today := e.todayDate()
	seen := make(map[string]struct{})
	events := make([]entity.CompletionEvent, 0, len(remoteToday)+len(e.today))
	for _, group := range [][]entity.CompletionEvent{remoteToday, e.today, e.pending.completions} {
		for _, ev := range group {
			if _, dup := seen[ev.ID.String()]; dup {
				continue
			}
			if ev.CompletedAt.In(e.cfg.Location).Format(entity.DateLayout) != today {
				continue
			}
			seen[ev.ID.String()] = struct{}{}
			events = append(events, ev)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CompletedAt.Before(events[j].CompletedAt)
	})
	e.today = events
}
