package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/limbo/coco/internal/cache"
	cachemocks "github.com/limbo/coco/internal/cache/mocks"
	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/internal/service"
	"github.com/limbo/coco/pkg/entity"
	"github.com/limbo/coco/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Variables for tests
var (
	userID = uuid.New()
	day0   = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	meditation = entity.Practice{ID: 1, Name: "Meditation", Benefits: []string{"calm"}, PointsPerMinute: 2, IsSystemPractice: true}
	breathing  = entity.Practice{ID: 2, Name: "Breathing", Benefits: []string{"focus"}, PointsPerMinute: 1, IsSystemPractice: true}
	journaling = entity.Practice{ID: 3, Name: "Journaling", Benefits: []string{"clarity"}, PointsPerMinute: 2, IsSystemPractice: true}
	walking    = entity.Practice{ID: 5, Name: "Mindful Walking", Benefits: []string{}, PointsPerMinute: 2.5, IsSystemPractice: true}
)

func catalogGateway() *gatewayFake {
	return newGatewayFake(meditation, breathing, journaling, walking)
}

func newEngine(t *testing.T, gw *gatewayFake, c cache.LocalCacheI, clk *testClock, defaults ...int64) *service.PracticeEngine {
	t.Helper()
	e := service.NewPracticeEngine(userID, gw, c, service.EngineConfig{
		Now:          clk.Now,
		Location:     time.UTC,
		SyncTimeout:  time.Second,
		DefaultDaily: defaults,
		Fallback:     []entity.Practice{meditation, breathing, journaling, walking},
		Logger:       logger.Discard(),
	})
	t.Cleanup(func() {
		_ = e.Close()
	})
	return e
}

func dailyIDs(e service.PracticeEngineI) []int64 {
	ids := make([]int64, 0)
	for _, p := range e.ListDaily() {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestExampleScenario(t *testing.T) {
	clk := newTestClock(day0)
	gw := catalogGateway()
	e := newEngine(t, gw, cache.NewMemoryCache(), clk)
	require.NoError(t, e.Refresh(context.Background()))

	assert.Empty(t, e.ListDaily())
	progress := e.Progress()
	assert.Equal(t, 0, progress.TotalPoints)
	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, 0, progress.StreakDays)

	require.NoError(t, e.AddToDaily(3))
	assert.Equal(t, []int64{3}, dailyIDs(e))

	points, err := e.CompletePractice(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, points)
	progress = e.Progress()
	assert.Equal(t, 20, progress.TotalPoints)
	assert.Equal(t, 1, progress.StreakDays)
	assert.Equal(t, "2026-10-18", progress.LastCompletionDate)

	clk.Advance(2 * time.Hour)
	points, err = e.CompletePractice(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, points)
	progress = e.Progress()
	assert.Equal(t, 30, progress.TotalPoints)
	assert.Equal(t, 1, progress.StreakDays)
	assert.Len(t, e.TodayCompletions(), 2)

	clk.Advance(24 * time.Hour)
	_, err = e.CompletePractice(3, 5)
	require.NoError(t, err)
	progress = e.Progress()
	assert.Equal(t, 2, progress.StreakDays)
	assert.Equal(t, 40, progress.TotalPoints)
	assert.Len(t, e.TodayCompletions(), 1)

	require.NoError(t, e.Flush(context.Background()))
	assert.Len(t, gw.Completions(), 3)
	stored, ok := gw.StoredProgress(userID)
	require.True(t, ok)
	assert.Equal(t, 40, stored.TotalPoints)
	assert.Equal(t, []int64{3}, gw.Daily(userID))
}

func TestDailyIdempotence(t *testing.T) {
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))

	require.NoError(t, e.AddToDaily(2))
	once := e.ListDaily()
	require.NoError(t, e.AddToDaily(2))
	assert.Equal(t, once, e.ListDaily())

	require.NoError(t, e.RemoveFromDaily(2))
	removedOnce := e.ListAll()
	require.NoError(t, e.RemoveFromDaily(2))
	assert.Equal(t, removedOnce, e.ListAll())
	assert.Empty(t, e.ListDaily())
	// practice itself stays visible
	assert.Len(t, e.ListAll(), 4)
}

func TestDailyUnknownPractice(t *testing.T) {
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))

	assert.ErrorIs(t, e.AddToDaily(42), errorvalues.ErrPracticeNotFound)
	assert.ErrorIs(t, e.RemoveFromDaily(42), errorvalues.ErrPracticeNotFound)
	assert.Equal(t, 0, e.Pending())
}

func TestDailySurvivesReload(t *testing.T) {
	tests := []struct {
		Desc       string
		SharedDisk bool
	}{
		{
			Desc:       "reload on the same host",
			SharedDisk: true,
		},
		{
			Desc:       "reload on another device",
			SharedDisk: false,
		},
	}
	for _, test := range tests {
		t.Run(test.Desc, func(t *testing.T) {
			clk := newTestClock(day0)
			gw := catalogGateway()
			c := cache.NewMemoryCache()
			e := newEngine(t, gw, c, clk)
			require.NoError(t, e.Refresh(context.Background()))

			require.NoError(t, e.AddToDaily(1))
			require.NoError(t, e.AddToDaily(2))
			require.NoError(t, e.RemoveFromDaily(1))
			require.NoError(t, e.AddToDaily(3))
			require.NoError(t, e.RemoveFromDaily(3))
			require.NoError(t, e.AddToDaily(5))
			require.NoError(t, e.Close())

			next := c
			if !test.SharedDisk {
				next = cache.NewMemoryCache()
			}
			reloaded := newEngine(t, gw, next, clk)
			require.NoError(t, reloaded.Refresh(context.Background()))
			assert.Equal(t, []int64{2, 5}, dailyIDs(reloaded))
			assert.Equal(t, []int64{2, 5}, gw.Daily(userID))
		})
	}
}

func TestRemovalOfflineNeverReappears(t *testing.T) {
	clk := newTestClock(day0)
	gw := catalogGateway()
	c := cache.NewMemoryCache()
	e := newEngine(t, gw, c, clk)
	require.NoError(t, e.Refresh(context.Background()))
	require.NoError(t, e.AddToDaily(1))
	require.NoError(t, e.AddToDaily(2))
	require.NoError(t, e.Flush(context.Background()))
	assert.True(t, e.Synced())

	gw.SetDown(true)
	require.NoError(t, e.RemoveFromDaily(1))
	err := e.Flush(context.Background())
	assert.ErrorIs(t, err, errorvalues.ErrPersistence)
	assert.False(t, e.Synced())
	assert.ErrorIs(t, e.LastSyncError(), errRemoteDown)
	assert.Equal(t, []int64{2}, dailyIDs(e))
	// the last drain attempt fails too, the queue stays in the cache
	assert.ErrorIs(t, e.Close(), errorvalues.ErrPersistence)

	// restart while the remote store is still down
	offline := newEngine(t, gw, c, clk)
	err = offline.Refresh(context.Background())
	assert.ErrorIs(t, err, errorvalues.ErrPersistence)
	assert.False(t, offline.Synced())
	assert.Equal(t, []int64{2}, dailyIDs(offline))
	assert.Equal(t, 1, offline.Pending())
	assert.ErrorIs(t, offline.Close(), errorvalues.ErrPersistence)

	gw.SetDown(false)
	online := newEngine(t, gw, c, clk)
	require.NoError(t, online.Refresh(context.Background()))
	assert.True(t, online.Synced())
	assert.NoError(t, online.LastSyncError())
	assert.Equal(t, []int64{2}, dailyIDs(online))
	assert.Equal(t, []int64{2}, gw.Daily(userID))
}

func TestRefreshMerge(t *testing.T) {
	clk := newTestClock(day0)
	gw := catalogGateway()
	other := uuid.New()
	c := cache.NewMemoryCache()
	// local snapshot written by an earlier session
	require.NoError(t, c.Save(userID, &entity.UserPracticeSnapshot{
		Practices: []entity.UserPractice{
			{Practice: meditation, IsDaily: true},
			{Practice: breathing, IsDaily: true},
			{Practice: journaling, IsDaily: false},
		},
		Progress: service.NewProgress(),
	}))
	// remote explicitly says 1 is not daily and 3 is
	require.NoError(t, gw.SetDailyFlag(context.Background(), userID, 1, false))
	require.NoError(t, gw.SetDailyFlag(context.Background(), userID, 3, true))
	require.NoError(t, gw.SetDailyFlag(context.Background(), other, 5, true))

	e := newEngine(t, gw, c, clk)
	require.NoError(t, e.Refresh(context.Background()))
	// remote wins for 1 and 3, 2 is known only locally and survives
	assert.Equal(t, []int64{2, 3}, dailyIDs(e))
	assert.Equal(t, 1, e.Pending())

	require.NoError(t, e.Flush(context.Background()))
	assert.Equal(t, []int64{2, 3}, gw.Daily(userID))
	assert.Equal(t, 0, e.Pending())
}

func TestRefreshKeepsWritesMadeDuringLoad(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(day0)
	gw := catalogGateway()
	pg := newParkingGateway(gw)
	e := service.NewPracticeEngine(userID, pg, cache.NewMemoryCache(), service.EngineConfig{
		Now:         clk.Now,
		Location:    time.UTC,
		SyncTimeout: 5 * time.Second,
		Logger:      logger.Discard(),
	})
	t.Cleanup(func() {
		_ = e.Close()
	})
	require.NoError(t, e.Refresh(ctx))
	require.NoError(t, e.AddToDaily(3))
	_, err := e.CompletePractice(3, 10)
	require.NoError(t, err)
	require.NoError(t, e.Flush(ctx))
	require.Equal(t, []int64{3}, gw.Daily(userID))

	pg.Arm()
	refreshDone := make(chan error, 1)
	go func() {
		refreshDone <- e.Refresh(ctx)
	}()
	// remote state is read, the merge has not happened yet
	<-pg.parked

	require.NoError(t, e.RemoveFromDaily(3))
	clk.Advance(time.Minute)
	_, err = e.CompletePractice(3, 10)
	require.NoError(t, err)
	flushDone := make(chan error, 1)
	go func() {
		flushDone <- e.Flush(ctx)
	}()

	close(pg.release)
	require.NoError(t, <-refreshDone)
	require.NoError(t, <-flushDone)

	assert.Empty(t, dailyIDs(e))
	assert.Empty(t, gw.Daily(userID))
	assert.Equal(t, 40, e.Progress().TotalPoints)
	stored, ok := gw.StoredProgress(userID)
	require.True(t, ok)
	assert.Equal(t, 40, stored.TotalPoints)
	assert.Len(t, gw.Completions(), 2)
	assert.Equal(t, 0, e.Pending())
}

func TestRefreshPrefersRemoteProgress(t *testing.T) {
	clk := newTestClock(day0)
	gw := catalogGateway()
	require.NoError(t, gw.SaveUserState(context.Background(), userID, &entity.UserPracticeSnapshot{
		Progress: entity.UserProgress{
			TotalPoints:        260,
			Level:              1,
			StreakDays:         4,
			LongestStreak:      6,
			TotalCompletions:   9,
			LastCompletionDate: "2026-10-17",
		},
	}))
	c := cache.NewMemoryCache()
	require.NoError(t, c.Save(userID, &entity.UserPracticeSnapshot{
		Practices: []entity.UserPractice{{Practice: meditation, IsDaily: true}},
		Progress: entity.UserProgress{
			TotalPoints:      40,
			Level:            1,
			NextLevelPoints:  100,
			TotalCompletions: 2,
		},
	}))

	e := newEngine(t, gw, c, clk)
	require.NoError(t, e.Refresh(context.Background()))
	progress := e.Progress()
	assert.Equal(t, 260, progress.TotalPoints)
	// level is derived again from points
	assert.Equal(t, 3, progress.Level)
	assert.Equal(t, 500, progress.NextLevelPoints)

	_, err := e.CompletePractice(1, 10)
	require.NoError(t, err)
	progress = e.Progress()
	assert.Equal(t, 280, progress.TotalPoints)
	assert.Equal(t, 5, progress.StreakDays)
	assert.Equal(t, 6, progress.LongestStreak)
}

func TestDefaultDailySet(t *testing.T) {
	clk := newTestClock(day0)
	gw := catalogGateway()
	c := cache.NewMemoryCache()

	e := newEngine(t, gw, c, clk, 1, 2, 77)
	require.NoError(t, e.Refresh(context.Background()))
	assert.Equal(t, []int64{1, 2}, dailyIDs(e))

	require.NoError(t, e.RemoveFromDaily(1))
	require.NoError(t, e.Close())

	again := newEngine(t, gw, cache.NewMemoryCache(), clk, 1, 2, 77)
	require.NoError(t, again.Refresh(context.Background()))
	assert.Equal(t, []int64{2}, dailyIDs(again))
}

func TestDefaultDailySetNeedsRemote(t *testing.T) {
	gw := catalogGateway()
	gw.SetDown(true)
	e := newEngine(t, gw, cache.NewMemoryCache(), newTestClock(day0), 1, 2)

	err := e.Refresh(context.Background())
	assert.ErrorIs(t, err, errorvalues.ErrPersistence)
	assert.Empty(t, e.ListDaily())
	// fallback catalog keeps the engine usable
	assert.Len(t, e.ListAll(), 4)

	gw.SetDown(false)
	require.NoError(t, e.Refresh(context.Background()))
	assert.Equal(t, []int64{1, 2}, dailyIDs(e))
	assert.True(t, e.Synced())
}

func TestCompletePracticeValidation(t *testing.T) {
	tests := []struct {
		Desc       string
		PracticeID int64
		Duration   int
		Error      error
	}{
		{
			Desc:       "zero duration",
			PracticeID: 1,
			Duration:   0,
			Error:      errorvalues.ErrValidation,
		},
		{
			Desc:       "negative duration",
			PracticeID: 1,
			Duration:   -5,
			Error:      errorvalues.ErrValidation,
		},
		{
			Desc:       "longer than a day",
			PracticeID: 1,
			Duration:   1441,
			Error:      errorvalues.ErrInvalidDuration,
		},
		{
			Desc:       "unknown practice",
			PracticeID: 404,
			Duration:   10,
			Error:      errorvalues.ErrPracticeNotFound,
		},
	}
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))
	before := e.Snapshot()
	for _, test := range tests {
		t.Run(test.Desc, func(t *testing.T) {
			points, err := e.CompletePractice(test.PracticeID, test.Duration)
			assert.ErrorIs(t, err, test.Error)
			assert.Equal(t, 0, points)
		})
	}
	after := e.Snapshot()
	assert.Equal(t, before.Progress, after.Progress)
	assert.Equal(t, before.Practices, after.Practices)
	assert.Empty(t, e.TodayCompletions())
	assert.Equal(t, 0, e.Pending())
}

func TestCompletePracticeNonDaily(t *testing.T) {
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))

	points, err := e.CompletePractice(5, 3)
	require.NoError(t, err)
	// 3 * 2.5 floored
	assert.Equal(t, 7, points)
	assert.Empty(t, e.ListDaily())
}

func TestStreakWithinDay(t *testing.T) {
	clk := newTestClock(day0)
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), clk)
	require.NoError(t, e.Refresh(context.Background()))

	_, err := e.CompletePractice(1, 1)
	require.NoError(t, err)
	clk.Advance(24 * time.Hour)
	before := e.Progress()

	for i := 0; i < 5; i++ {
		clk.Advance(time.Minute)
		_, err := e.CompletePractice(2, 10)
		require.NoError(t, err)
	}
	after := e.Progress()
	assert.Equal(t, before.TotalPoints+50, after.TotalPoints)
	assert.Equal(t, before.StreakDays+1, after.StreakDays)
	assert.Equal(t, before.TotalCompletions+5, after.TotalCompletions)

	practices := e.ListAll()
	assert.Equal(t, 1, practices[1].Streak)
	assert.Equal(t, "2026-10-19", practices[1].LastCompletedOn)
}

func TestStreakReset(t *testing.T) {
	clk := newTestClock(day0)
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), clk)
	require.NoError(t, e.Refresh(context.Background()))

	for i := 0; i < 3; i++ {
		_, err := e.CompletePractice(1, 5)
		require.NoError(t, err)
		clk.Advance(24 * time.Hour)
	}
	assert.Equal(t, 3, e.Progress().StreakDays)
	assert.Equal(t, 3, e.ListAll()[0].Streak)

	clk.Advance(48 * time.Hour)
	_, err := e.CompletePractice(1, 5)
	require.NoError(t, err)
	progress := e.Progress()
	assert.Equal(t, 1, progress.StreakDays)
	assert.Equal(t, 3, progress.LongestStreak)
	assert.Equal(t, 1, e.ListAll()[0].Streak)
}

func TestCalendarDayUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 21:30 UTC is already the next day at UTC+5
	clk := newTestClock(time.Date(2026, 10, 18, 21, 30, 0, 0, time.UTC))
	e := service.NewPracticeEngine(userID, catalogGateway(), cache.NewMemoryCache(), service.EngineConfig{
		Now:      clk.Now,
		Location: loc,
		Logger:   logger.Discard(),
	})
	defer e.Close()
	require.NoError(t, e.Refresh(context.Background()))

	_, err := e.CompletePractice(1, 5)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", e.Progress().LastCompletionDate)
	assert.Len(t, e.TodayCompletions(), 1)
}

func TestAchievementsUnlockOnce(t *testing.T) {
	clk := newTestClock(day0)
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), clk)
	require.NoError(t, e.Refresh(context.Background()))

	_, err := e.CompletePractice(1, 10)
	require.NoError(t, err)
	_, err = e.CompletePractice(1, 50)
	require.NoError(t, err)
	_, err = e.CompletePractice(1, 10)
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, a := range e.Progress().Achievements {
		ids = append(ids, a.ID)
		assert.NotNil(t, a.UnlockedAt)
	}
	assert.Equal(t, []string{"first_completion", "points_100"}, ids)
}

func TestSnapshotRoundTrip(t *testing.T) {
	clk := newTestClock(day0)
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), clk)
	require.NoError(t, e.Refresh(context.Background()))
	require.NoError(t, e.AddToDaily(1))
	require.NoError(t, e.AddToDaily(5))
	_, err := e.CompletePractice(1, 30)
	require.NoError(t, err)
	clk.Advance(24 * time.Hour)
	_, err = e.CompletePractice(5, 20)
	require.NoError(t, err)

	raw, err := sonic.Marshal(e.Snapshot())
	require.NoError(t, err)
	var decoded entity.UserPracticeSnapshot
	require.NoError(t, sonic.Unmarshal(raw, &decoded))

	restored := newEngine(t, catalogGateway(), cache.NewMemoryCache(), clk)
	restored.Restore(&decoded)
	assert.Equal(t, dailyIDs(e), dailyIDs(restored))
	assert.Equal(t, e.Progress(), restored.Progress())
	assert.Equal(t, e.ListAll(), restored.ListAll())
	assert.Equal(t, e.TodayCompletions(), restored.TodayCompletions())
	assert.Equal(t, e.Pending(), restored.Pending())
}

func TestRemoteFailureDoesNotAbort(t *testing.T) {
	clk := newTestClock(day0)
	gw := catalogGateway()
	e := newEngine(t, gw, cache.NewMemoryCache(), clk)
	require.NoError(t, e.Refresh(context.Background()))

	gw.SetDown(true)
	points, err := e.CompletePractice(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, points)
	require.NoError(t, e.AddToDaily(1))

	assert.ErrorIs(t, e.Flush(context.Background()), errorvalues.ErrPersistence)
	assert.False(t, e.Synced())
	assert.Equal(t, 20, e.Progress().TotalPoints)
	assert.Equal(t, 3, e.Pending())
	assert.Empty(t, gw.Completions())

	gw.SetDown(false)
	require.NoError(t, e.Flush(context.Background()))
	assert.True(t, e.Synced())
	assert.Equal(t, 0, e.Pending())
	require.Len(t, gw.Completions(), 1)
	// retry of an acknowledged write is harmless
	require.NoError(t, gw.RecordCompletion(context.Background(), &gw.Completions()[0]))
	assert.Len(t, gw.Completions(), 1)
}

func TestCacheFailuresAreIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheMock := cachemocks.NewMockLocalCacheI(ctrl)
	cacheMock.EXPECT().Load(userID).Return(nil, errors.New("disk quota exceeded")).AnyTimes()
	cacheMock.EXPECT().Save(userID, gomock.Any()).Return(errorvalues.ErrCache).AnyTimes()

	e := newEngine(t, catalogGateway(), cacheMock, newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))
	require.NoError(t, e.AddToDaily(2))
	points, err := e.CompletePractice(2, 15)
	require.NoError(t, err)
	assert.Equal(t, 15, points)
	assert.True(t, e.Synced())
}

func TestEveryChangeReachesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheMock := cachemocks.NewMockLocalCacheI(ctrl)
	cacheMock.EXPECT().Load(userID).Return(nil, nil)
	// drain and merge of the first refresh
	cacheMock.EXPECT().Save(userID, gomock.Any()).Return(nil).Times(2)

	e := newEngine(t, catalogGateway(), cacheMock, newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))

	var saved *entity.UserPracticeSnapshot
	cacheMock.EXPECT().Save(userID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, s *entity.UserPracticeSnapshot) error {
		saved = s
		return nil
	}).Times(1)
	require.NoError(t, e.AddToDaily(3))
	require.NotNil(t, saved)
	require.NotNil(t, saved.Sync)
	assert.Equal(t, map[int64]bool{3: true}, saved.Sync.PendingDaily)
	assert.True(t, saved.Practices[2].IsDaily)

	cacheMock.EXPECT().Save(userID, gomock.Any()).Return(nil).AnyTimes()
}

func TestCreateAndDeletePractice(t *testing.T) {
	gw := catalogGateway()
	otherOwner := uuid.New()
	foreign, err := gw.CreatePractice(context.Background(), &entity.Practice{Name: "Foreign", PointsPerMinute: 1, CreatedByUserID: &otherOwner})
	require.NoError(t, err)

	e := newEngine(t, gw, cache.NewMemoryCache(), newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))
	// practices of other users are invisible
	assert.Len(t, e.ListAll(), 4)

	created, err := e.CreatePractice(context.Background(), &service.CreatePracticeRequest{
		Name:            "Cold Shower",
		Benefits:        []string{"energy"},
		PointsPerMinute: 3,
		AddToDaily:      true,
	})
	require.NoError(t, err)
	assert.False(t, created.IsSystemPractice)
	require.NotNil(t, created.CreatedByUserID)
	assert.Equal(t, userID, *created.CreatedByUserID)
	assert.Equal(t, []int64{created.ID}, dailyIDs(e))
	// text[] columns are NOT NULL, lists are never sent as nil
	stored, ok := gw.StoredPractice(created.ID)
	require.True(t, ok)
	assert.NotNil(t, stored.Tags)
	assert.Empty(t, stored.Tags)
	assert.Equal(t, []string{"energy"}, stored.Benefits)

	_, err = e.CreatePractice(context.Background(), &service.CreatePracticeRequest{Name: "Cold Shower", PointsPerMinute: 3})
	assert.ErrorIs(t, err, errorvalues.ErrPracticeExists)
	_, err = e.CreatePractice(context.Background(), &service.CreatePracticeRequest{Name: "", PointsPerMinute: 3})
	assert.ErrorIs(t, err, errorvalues.ErrValidation)
	_, err = e.CreatePractice(context.Background(), &service.CreatePracticeRequest{Name: "Free", PointsPerMinute: 0})
	assert.ErrorIs(t, err, errorvalues.ErrValidation)

	points, err := e.CompletePractice(created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 30, points)

	assert.ErrorIs(t, e.DeletePractice(context.Background(), 1), errorvalues.ErrSystemPractice)
	assert.ErrorIs(t, e.DeletePractice(context.Background(), foreign.ID), errorvalues.ErrPracticeNotFound)
	assert.ErrorIs(t, e.DeletePractice(context.Background(), 999), errorvalues.ErrPracticeNotFound)

	require.NoError(t, e.DeletePractice(context.Background(), created.ID))
	assert.Len(t, e.ListAll(), 4)
	assert.Empty(t, e.ListDaily())
	// queued writes for the deleted practice are dropped
	require.NoError(t, e.Flush(context.Background()))
	assert.Empty(t, gw.Completions())
	// points already earned stay
	assert.Equal(t, 30, e.Progress().TotalPoints)
}

func TestCreatePracticeRemoteDown(t *testing.T) {
	gw := catalogGateway()
	e := newEngine(t, gw, cache.NewMemoryCache(), newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))

	gw.SetDown(true)
	_, err := e.CreatePractice(context.Background(), &service.CreatePracticeRequest{Name: "Stretching", PointsPerMinute: 1})
	assert.ErrorIs(t, err, errorvalues.ErrPersistence)
	assert.False(t, e.Synced())
	assert.Len(t, e.ListAll(), 4)
}

func TestClosedEngine(t *testing.T) {
	e := newEngine(t, catalogGateway(), cache.NewMemoryCache(), newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))
	require.NoError(t, e.Close())

	assert.ErrorIs(t, e.AddToDaily(1), errorvalues.ErrEngineClosed)
	_, err := e.CompletePractice(1, 5)
	assert.ErrorIs(t, err, errorvalues.ErrEngineClosed)
	assert.ErrorIs(t, e.Refresh(context.Background()), errorvalues.ErrEngineClosed)
	// reads keep working
	assert.Len(t, e.ListAll(), 4)
}

func TestBackgroundSync(t *testing.T) {
	gw := catalogGateway()
	e := newEngine(t, gw, cache.NewMemoryCache(), newTestClock(day0))
	require.NoError(t, e.Refresh(context.Background()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)

	require.NoError(t, e.AddToDaily(2))
	_, err := e.CompletePractice(2, 10)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return e.Pending() == 0 && len(gw.Completions()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []int64{2}, gw.Daily(userID))
	require.NoError(t, e.Close())
}
