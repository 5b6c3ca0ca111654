package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/limbo/coco/internal/cache"
	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/internal/metrics"
	"github.com/limbo/coco/internal/repository"
	"github.com/limbo/coco/pkg/entity"
)

const (
	defaultSyncTimeout   = 5 * time.Second
	defaultRetryInterval = 30 * time.Second
)

type EngineConfig struct {
	// Clock, time.Now when nil
	Now func() time.Time
	// Calendar days are computed in this zone, time.Local when nil
	Location *time.Location
	// Limit for a single remote call
	SyncTimeout time.Duration
	// Pause between retries of a failed drain while the loop runs
	RetryInterval time.Duration
	// Daily set given to a user the first time nothing is known about them
	DefaultDaily []int64
	// Practices shown when neither the remote store nor the cache is available
	Fallback []entity.Practice
	Logger   *slog.Logger
}

// PracticeEngine tracks practices of a single user. In-memory state is the
// source the user sees; the local cache gets every change synchronously and
// the remote store through the pending queue.
type PracticeEngine struct {
	uid     uuid.UUID
	gateway repository.PersistenceGatewayI
	cache   cache.LocalCacheI
	cfg     EngineConfig
	log     *slog.Logger

	mu        sync.Mutex
	practices map[int64]*entity.UserPractice
	progress  entity.UserProgress
	today     []entity.CompletionEvent
	pending   pendingQueue
	updatedAt time.Time
	loaded    bool
	// state came from the cache only, cleared by a successful Refresh
	stale    bool
	unsynced bool
	lastErr  error
	closed   bool

	// serializes drains of the pending queue
	flushMu sync.Mutex
	kickCh  chan struct{}
	stopLoop context.CancelFunc
	loopDone chan struct{}
}

func NewPracticeEngine(uid uuid.UUID, gateway repository.PersistenceGatewayI, localCache cache.LocalCacheI, cfg EngineConfig) *PracticeEngine {
	if gateway == nil {
		panic("provided nil gateway")
	}
	if localCache == nil {
		panic("provided nil cache")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = defaultSyncTimeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	InitValidator()
	return &PracticeEngine{
		uid:       uid,
		gateway:   gateway,
		cache:     localCache,
		cfg:       cfg,
		log:       logger.With(slog.String("uid", uid.String())),
		practices: make(map[int64]*entity.UserPractice),
		progress:  NewProgress(),
		today:     make([]entity.CompletionEvent, 0),
		pending:   newPendingQueue(),
		kickCh:    make(chan struct{}, 1),
	}
}

func (e *PracticeEngine) UserID() uuid.UUID {
	return e.uid
}

func (e *PracticeEngine) now() time.Time {
	return e.cfg.Now().In(e.cfg.Location)
}

func (e *PracticeEngine) todayDate() string {
	return e.now().Format(entity.DateLayout)
}

func (e *PracticeEngine) AddToDaily(practiceID int64) error {
	return e.setDaily(practiceID, true)
}

func (e *PracticeEngine) RemoveFromDaily(practiceID int64) error {
	return e.setDaily(practiceID, false)
}

func (e *PracticeEngine) setDaily(practiceID int64, isDaily bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errorvalues.ErrEngineClosed
	}
	p, ok := e.practices[practiceID]
	if !ok {
		return errorvalues.ErrPracticeNotFound
	}
	if p.IsDaily == isDaily {
		return nil
	}
	p.IsDaily = isDaily
	e.pending.daily[practiceID] = isDaily
	e.touchLocked()
	action := "remove"
	if isDaily {
		action = "add"
	}
	metrics.DailyChanges.WithLabelValues(action).Inc()
	e.log.Debug("daily set changed", slog.Int64("practice_id", practiceID), slog.Bool("is_daily", isDaily))
	return nil
}

func (e *PracticeEngine) CompletePractice(practiceID int64, durationMinutes int) (int, error) {
	if durationMinutes < 1 || durationMinutes > 1440 {
		return 0, errorvalues.ErrInvalidDuration
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, errorvalues.ErrEngineClosed
	}
	p, ok := e.practices[practiceID]
	if !ok {
		return 0, errorvalues.ErrPracticeNotFound
	}
	now := e.now()
	today := now.Format(entity.DateLayout)
	points := PointsFor(durationMinutes, p.PointsPerMinute)
	event := entity.CompletionEvent{
		ID:              uuid.New(),
		UserID:          e.uid,
		PracticeID:      practiceID,
		CompletedAt:     now.UTC(),
		DurationMinutes: durationMinutes,
		Points:          points,
	}

	p.Streak = NextStreak(p.Streak, p.LastCompletedOn, today)
	p.LastCompletedOn = today
	unlocked := ApplyCompletion(&e.progress, points, today, now)

	e.today = append(e.todayLocked(today), event)
	e.pending.completions = append(e.pending.completions, event)
	e.pending.markSave()
	e.touchLocked()

	metrics.CompletionsTotal.Inc()
	metrics.PointsAwarded.Add(float64(points))
	for _, a := range unlocked {
		metrics.AchievementsUnlocked.WithLabelValues(a.ID).Inc()
		e.log.Info("achievement unlocked", slog.String("achievement", a.ID))
	}
	e.log.Debug("practice completed",
		slog.Int64("practice_id", practiceID),
		slog.Int("duration", durationMinutes),
		slog.Int("points", points),
		slog.Int("streak_days", e.progress.StreakDays),
	)
	return points, nil
}

func (e *PracticeEngine) ListDaily() []entity.UserPractice {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]entity.UserPractice, 0)
	for _, p := range e.sortedLocked() {
		if p.IsDaily {
			out = append(out, p)
		}
	}
	return out
}

func (e *PracticeEngine) ListAll() []entity.UserPractice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortedLocked()
}

func (e *PracticeEngine) TodayCompletions() []entity.CompletionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.todayLocked(e.todayDate()))
}

func (e *PracticeEngine) Progress() entity.UserProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneProgress(e.progress)
}

func (e *PracticeEngine) Snapshot() *entity.UserPracticeSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Restore replaces the whole engine state with a snapshot, pending writes
// included.
func (e *PracticeEngine) Restore(snapshot *entity.UserPracticeSnapshot) {
	if snapshot == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.restoreLocked(snapshot)
	e.loaded = true
}

func (e *PracticeEngine) Synced() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.unsynced && !e.stale
}

func (e *PracticeEngine) LastSyncError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

func (e *PracticeEngine) CreatePractice(ctx context.Context, req *CreatePracticeRequest) (*entity.UserPractice, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", errorvalues.ErrValidation)
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}
	if e.isClosed() {
		return nil, errorvalues.ErrEngineClosed
	}
	uid := e.uid
	benefits, tags := req.Benefits, req.Tags
	if benefits == nil {
		benefits = []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.SyncTimeout)
	defer cancel()
	created, err := e.gateway.CreatePractice(callCtx, &entity.Practice{
		Name:            req.Name,
		Description:     req.Description,
		Benefits:        benefits,
		PointsPerMinute: req.PointsPerMinute,
		Tags:            tags,
		Category:        req.Category,
		CreatedByUserID: &uid,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrPracticeExists) {
			return nil, err
		}
		e.recordFailure("create", err)
		return nil, fmt.Errorf("%w: %s", errorvalues.ErrPersistence, err.Error())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	up := &entity.UserPractice{Practice: *created, IsDaily: req.AddToDaily}
	e.practices[created.ID] = up
	if req.AddToDaily {
		e.pending.daily[created.ID] = true
	}
	e.touchLocked()
	e.log.Info("practice created", slog.Int64("practice_id", created.ID))
	return cloneUserPractice(up), nil
}

func (e *PracticeEngine) DeletePractice(ctx context.Context, practiceID int64) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errorvalues.ErrEngineClosed
	}
	p, ok := e.practices[practiceID]
	if !ok {
		e.mu.Unlock()
		return errorvalues.ErrPracticeNotFound
	}
	if p.IsSystemPractice {
		e.mu.Unlock()
		return errorvalues.ErrSystemPractice
	}
	if p.CreatedByUserID == nil || *p.CreatedByUserID != e.uid {
		e.mu.Unlock()
		return errorvalues.ErrWrongOwner
	}
	e.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.SyncTimeout)
	defer cancel()
	if err := e.gateway.DeletePractice(callCtx, e.uid, practiceID); err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrPracticeNotFound):
		case errors.Is(err, errorvalues.ErrSystemPractice), errors.Is(err, errorvalues.ErrWrongOwner):
			return err
		default:
			e.recordFailure("delete", err)
			return fmt.Errorf("%w: %s", errorvalues.ErrPersistence, err.Error())
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.practices, practiceID)
	e.pending.dropPractice(practiceID)
	e.touchLocked()
	e.log.Info("practice deleted", slog.Int64("practice_id", practiceID))
	return nil
}

func (e *PracticeEngine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// touchLocked writes the current state through to the cache and wakes the
// sync loop.
func (e *PracticeEngine) touchLocked() {
	e.updatedAt = e.cfg.Now().UTC()
	e.persistLocked()
	e.kick()
}

func (e *PracticeEngine) persistLocked() {
	if err := e.cache.Save(e.uid, e.snapshotLocked()); err != nil {
		metrics.CacheErrors.WithLabelValues("save").Inc()
		e.log.Warn("local cache save failed", slog.String("error", err.Error()))
	}
}

func (e *PracticeEngine) recordFailure(op string, err error) {
	metrics.SyncFailures.WithLabelValues(op).Inc()
	e.log.Warn("remote store call failed", slog.String("op", op), slog.String("error", err.Error()))
	e.mu.Lock()
	e.unsynced = true
	e.lastErr = err
	e.mu.Unlock()
}

// todayLocked drops completions from previous days.
func (e *PracticeEngine) todayLocked(today string) []entity.CompletionEvent {
	kept := e.today[:0]
	for _, ev := range e.today {
		if ev.CompletedAt.In(e.cfg.Location).Format(entity.DateLayout) == today {
			kept = append(kept, ev)
		}
	}
	e.today = kept
	return kept
}

func (e *PracticeEngine) sortedLocked() []entity.UserPractice {
	out := make([]entity.UserPractice, 0, len(e.practices))
	for _, p := range e.practices {
		out = append(out, *cloneUserPractice(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func (e *PracticeEngine) snapshotLocked() *entity.UserPracticeSnapshot {
	snapshot := &entity.UserPracticeSnapshot{
		Practices:        e.sortedLocked(),
		Progress:         cloneProgress(e.progress),
		TodayCompletions: slices.Clone(e.todayLocked(e.todayDate())),
		UpdatedAt:        e.updatedAt,
	}
	if e.unsynced || e.stale || !e.pending.empty() {
		snapshot.Sync = &entity.SyncState{
			Unsynced:           e.unsynced || e.stale,
			PendingSave:        e.pending.save,
			PendingDaily:       cloneDaily(e.pending.daily),
			PendingCompletions: slices.Clone(e.pending.completions),
		}
	}
	return snapshot
}

func (e *PracticeEngine) restoreLocked(snapshot *entity.UserPracticeSnapshot) {
	e.practices = make(map[int64]*entity.UserPractice, len(snapshot.Practices))
	for i := range snapshot.Practices {
		p := cloneUserPractice(&snapshot.Practices[i])
		e.practices[p.ID] = p
	}
	e.progress = cloneProgress(snapshot.Progress)
	if e.progress.Level < 1 {
		e.progress.Level = LevelFor(e.progress.TotalPoints)
		e.progress.NextLevelPoints = NextLevelPoints(e.progress.Level)
	}
	e.today = slices.Clone(snapshot.TodayCompletions)
	if e.today == nil {
		e.today = make([]entity.CompletionEvent, 0)
	}
	e.updatedAt = snapshot.UpdatedAt
	e.pending = newPendingQueue()
	e.unsynced = false
	if snapshot.Sync != nil {
		for id, isDaily := range snapshot.Sync.PendingDaily {
			e.pending.daily[id] = isDaily
		}
		if snapshot.Sync.PendingCompletions != nil {
			e.pending.completions = slices.Clone(snapshot.Sync.PendingCompletions)
		}
		if snapshot.Sync.PendingSave {
			e.pending.markSave()
		}
		e.unsynced = snapshot.Sync.Unsynced
	}
}

func cloneUserPractice(p *entity.UserPractice) *entity.UserPractice {
	c := *p
	c.Benefits = slices.Clone(p.Benefits)
	if c.Benefits == nil {
		c.Benefits = []string{}
	}
	c.Tags = slices.Clone(p.Tags)
	if p.CreatedByUserID != nil {
		owner := *p.CreatedByUserID
		c.CreatedByUserID = &owner
	}
	return &c
}

func cloneProgress(p entity.UserProgress) entity.UserProgress {
	c := p
	c.Achievements = slices.Clone(p.Achievements)
	if c.Achievements == nil {
		c.Achievements = []entity.Achievement{}
	}
	return c
}

func cloneDaily(m map[int64]bool) map[int64]bool {
	if len(m) == 0 {
		return nil
	}
	c := make(map[int64]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
