package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/pkg/entity"
)

var errRemoteDown = errors.New("connection refused")

// gatewayFake is an in-memory remote store.
type gatewayFake struct {
	mu          sync.Mutex
	down        bool
	practices   map[int64]entity.Practice
	states      map[uuid.UUID]map[int64]entity.PracticeState
	progress    map[uuid.UUID]entity.UserProgress
	completions []entity.CompletionEvent
	nextID      int64
	saves       int
	dailyWrites int
}

func newGatewayFake(practices ...entity.Practice) *gatewayFake {
	g := &gatewayFake{
		practices: make(map[int64]entity.Practice),
		states:    make(map[uuid.UUID]map[int64]entity.PracticeState),
		progress:  make(map[uuid.UUID]entity.UserProgress),
		nextID:    100,
	}
	for _, p := range practices {
		g.practices[p.ID] = p
	}
	return g
}

func (g *gatewayFake) SetDown(down bool) {
	g.mu.Lock()
	g.down = down
	g.mu.Unlock()
}

func (g *gatewayFake) Daily(uid uuid.UUID) []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]int64, 0)
	for id, st := range g.states[uid] {
		if st.IsDaily {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (g *gatewayFake) Completions() []entity.CompletionEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]entity.CompletionEvent(nil), g.completions...)
}

func (g *gatewayFake) StoredProgress(uid uuid.UUID) (entity.UserProgress, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.progress[uid]
	return p, ok
}

func (g *gatewayFake) StoredPractice(id int64) (entity.Practice, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.practices[id]
	return p, ok
}

func (g *gatewayFake) stateOf(uid uuid.UUID) map[int64]entity.PracticeState {
	m, ok := g.states[uid]
	if !ok {
		m = make(map[int64]entity.PracticeState)
		g.states[uid] = m
	}
	return m
}

func (g *gatewayFake) LoadUserState(ctx context.Context, uid uuid.UUID) (*entity.UserState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return nil, errRemoteDown
	}
	state := &entity.UserState{
		Practices:      make([]entity.Practice, 0),
		PracticeStates: make(map[int64]entity.PracticeState),
	}
	for _, p := range g.practices {
		if p.IsSystemPractice || (p.CreatedByUserID != nil && *p.CreatedByUserID == uid) {
			state.Practices = append(state.Practices, p)
		}
	}
	sort.Slice(state.Practices, func(i, j int) bool { return state.Practices[i].ID < state.Practices[j].ID })
	for id, st := range g.states[uid] {
		state.PracticeStates[id] = st
	}
	if p, ok := g.progress[uid]; ok {
		state.Progress = &p
	}
	return state, nil
}

func (g *gatewayFake) SaveUserState(ctx context.Context, uid uuid.UUID, snapshot *entity.UserPracticeSnapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return errRemoteDown
	}
	g.saves++
	g.progress[uid] = snapshot.Progress
	states := g.stateOf(uid)
	for _, p := range snapshot.Practices {
		if p.Streak == 0 && p.LastCompletedOn == "" {
			continue
		}
		st := states[p.ID]
		st.PracticeID = p.ID
		st.Streak = p.Streak
		st.LastCompletedOn = p.LastCompletedOn
		states[p.ID] = st
	}
	return nil
}

func (g *gatewayFake) RecordCompletion(ctx context.Context, event *entity.CompletionEvent) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return errRemoteDown
	}
	if _, ok := g.practices[event.PracticeID]; !ok {
		return errorvalues.ErrPracticeNotFound
	}
	for _, ev := range g.completions {
		if ev.ID == event.ID {
			return nil
		}
	}
	g.completions = append(g.completions, *event)
	return nil
}

func (g *gatewayFake) SetDailyFlag(ctx context.Context, uid uuid.UUID, practiceID int64, isDaily bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return errRemoteDown
	}
	if _, ok := g.practices[practiceID]; !ok {
		return errorvalues.ErrPracticeNotFound
	}
	g.dailyWrites++
	states := g.stateOf(uid)
	st := states[practiceID]
	st.PracticeID = practiceID
	st.IsDaily = isDaily
	states[practiceID] = st
	return nil
}

func (g *gatewayFake) ListCompletions(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.CompletionEvent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return nil, errRemoteDown
	}
	out := make([]entity.CompletionEvent, 0)
	for _, ev := range g.completions {
		if ev.UserID == uid && !ev.CompletedAt.Before(from) && ev.CompletedAt.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (g *gatewayFake) CreatePractice(ctx context.Context, practice *entity.Practice) (*entity.Practice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return nil, errRemoteDown
	}
	for _, p := range g.practices {
		if p.Name == practice.Name && p.CreatedByUserID != nil && practice.CreatedByUserID != nil &&
			*p.CreatedByUserID == *practice.CreatedByUserID {
			return nil, errorvalues.ErrPracticeExists
		}
	}
	g.nextID++
	created := *practice
	created.ID = g.nextID
	g.practices[created.ID] = created
	return &created, nil
}

func (g *gatewayFake) DeletePractice(ctx context.Context, uid uuid.UUID, practiceID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return errRemoteDown
	}
	p, ok := g.practices[practiceID]
	if !ok {
		return errorvalues.ErrPracticeNotFound
	}
	if p.IsSystemPractice {
		return errorvalues.ErrSystemPractice
	}
	if p.CreatedByUserID == nil || *p.CreatedByUserID != uid {
		return errorvalues.ErrWrongOwner
	}
	delete(g.practices, practiceID)
	for _, states := range g.states {
		delete(states, practiceID)
	}
	return nil
}

func (g *gatewayFake) UpsertSystemPractices(ctx context.Context, practices []entity.Practice) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.down {
		return errRemoteDown
	}
	for _, p := range practices {
		g.practices[p.ID] = p
	}
	return nil
}

// testClock is a settable clock.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{t: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// parkingGateway holds an armed LoadUserState after reading the remote
// state until release is closed.
type parkingGateway struct {
	*gatewayFake
	armed   chan struct{}
	parked  chan struct{}
	release chan struct{}
}

func newParkingGateway(g *gatewayFake) *parkingGateway {
	return &parkingGateway{gatewayFake: g, armed: make(chan struct{}, 1)}
}

// Arm makes the next LoadUserState park.
func (g *parkingGateway) Arm() {
	g.parked = make(chan struct{})
	g.release = make(chan struct{})
	g.armed <- struct{}{}
}

func (g *parkingGateway) LoadUserState(ctx context.Context, uid uuid.UUID) (*entity.UserState, error) {
	state, err := g.gatewayFake.LoadUserState(ctx, uid)
	select {
	case <-g.armed:
		close(g.parked)
		<-g.release
	default:
	}
	return state, err
}
