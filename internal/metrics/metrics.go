// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CompletionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coco_completions_total",
		Help: "Accepted practice completions",
	})

	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coco_points_awarded_total",
		Help: "Points earned by accepted completions",
	})

	AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coco_achievements_unlocked_total",
		Help: "Achievements unlocked by achievement id",
	}, []string{"achievement"})

	// Labels: "add", "remove"
	DailyChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coco_daily_changes_total",
		Help: "Effective daily set changes",
	}, []string{"action"})

	// Labels: "completion", "daily", "save", "load"
	SyncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coco_sync_failures_total",
		Help: "Remote store calls that failed",
	}, []string{"op"})

	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coco_sync_duration_seconds",
		Help:    "Duration of one pending queue drain",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	// Labels: "save", "load"
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coco_cache_errors_total",
		Help: "Local cache failures",
	}, []string{"op"})

	ActiveEngines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coco_active_engines",
		Help: "Practice engines held in memory",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coco_http_requests_total",
		Help: "HTTP requests by route pattern and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coco_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
