package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/limbo/coco/internal/cache"
	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/internal/metrics"
	"github.com/limbo/coco/internal/repository"
)

// Tracker keeps one engine per user. Engines are created on first use, get
// their initial Refresh and run their sync loop until Close.
type Tracker struct {
	// parent of every engine sync loop
	ctx     context.Context
	gateway repository.PersistenceGatewayI
	cache   cache.LocalCacheI
	cfg     EngineConfig

	mu      sync.Mutex
	engines map[uuid.UUID]*PracticeEngine
	closed  bool
	group   singleflight.Group
}

func NewTracker(ctx context.Context, gateway repository.PersistenceGatewayI, localCache cache.LocalCacheI, cfg EngineConfig) *Tracker {
	if gateway == nil {
		panic("provided nil gateway")
	}
	if localCache == nil {
		panic("provided nil cache")
	}
	return &Tracker{
		ctx:     ctx,
		gateway: gateway,
		cache:   localCache,
		cfg:     cfg,
		engines: make(map[uuid.UUID]*PracticeEngine),
	}
}

func (t *Tracker) ForUser(ctx context.Context, uid uuid.UUID) (PracticeEngineI, error) {
	e, err := t.engine(ctx, uid)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (t *Tracker) engine(ctx context.Context, uid uuid.UUID) (*PracticeEngine, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, errorvalues.ErrEngineClosed
	}
	if e, ok := t.engines[uid]; ok {
		t.mu.Unlock()
		return e, nil
	}
	t.mu.Unlock()

	v, err, _ := t.group.Do(uid.String(), func() (any, error) {
		t.mu.Lock()
		if e, ok := t.engines[uid]; ok {
			t.mu.Unlock()
			return e, nil
		}
		t.mu.Unlock()

		e := NewPracticeEngine(uid, t.gateway, t.cache, t.cfg)
		if err := e.Refresh(ctx); err != nil {
			if !errors.Is(err, errorvalues.ErrPersistence) {
				return nil, err
			}
			e.log.Warn("engine started offline", slog.String("error", err.Error()))
		}

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed {
			_ = e.Close()
			return nil, errorvalues.ErrEngineClosed
		}
		e.Start(t.ctx)
		t.engines[uid] = e
		metrics.ActiveEngines.Inc()
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PracticeEngine), nil
}

// Evict closes the engine of uid and forgets it. Its state stays in the
// local cache.
func (t *Tracker) Evict(uid uuid.UUID) error {
	t.mu.Lock()
	e, ok := t.engines[uid]
	delete(t.engines, uid)
	t.mu.Unlock()
	if !ok {
		return nil
	}
	metrics.ActiveEngines.Dec()
	return e.Close()
}

// Close closes every engine. Engines that could not drain their queue keep
// it in the local cache.
func (t *Tracker) Close() error {
	t.mu.Lock()
	t.closed = true
	engines := t.engines
	t.engines = make(map[uuid.UUID]*PracticeEngine)
	t.mu.Unlock()

	var errs []error
	for _, e := range engines {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
		metrics.ActiveEngines.Dec()
	}
	return errors.Join(errs...)
}
