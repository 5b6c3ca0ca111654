package service

import (
	"math"
	"time"

	"github.com/limbo/coco/pkg/entity"
)

// Cumulative points needed for levels 1..10.
var levelThresholds = []int{0, 100, 250, 500, 1000, 2000, 3500, 5500, 8000, 12000}

// MaxLevel is the last level of the threshold table.
var MaxLevel = len(levelThresholds)

// LevelFor returns the highest level whose threshold is <= totalPoints.
func LevelFor(totalPoints int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if totalPoints >= threshold {
			level = i + 1
		}
	}
	return level
}

// NextLevelPoints is the threshold of level+1. At the top level it stays at
// the last threshold.
func NextLevelPoints(level int) int {
	if level < 1 {
		level = 1
	}
	if level >= len(levelThresholds) {
		return levelThresholds[len(levelThresholds)-1]
	}
	return levelThresholds[level]
}

// PointsFor floors duration * rate.
func PointsFor(durationMinutes int, pointsPerMinute float64) int {
	if durationMinutes <= 0 || pointsPerMinute <= 0 {
		return 0
	}
	return int(math.Floor(float64(durationMinutes) * pointsPerMinute))
}

// NextStreak applies the daily streak rule: same day keeps the counter,
// the day after increments it, anything else restarts at 1.
func NextStreak(current int, lastDate, today string) int {
	if lastDate == today {
		if current < 1 {
			return 1
		}
		return current
	}
	if lastDate != "" && lastDate == previousDay(today) {
		return current + 1
	}
	return 1
}

func previousDay(date string) string {
	t, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(entity.DateLayout)
}

// NewProgress is the progress of a user with no completions.
func NewProgress() entity.UserProgress {
	return entity.UserProgress{
		Level:           1,
		NextLevelPoints: NextLevelPoints(1),
		Achievements:    []entity.Achievement{},
	}
}

type achievementRule struct {
	achievement entity.Achievement
	satisfied   func(p *entity.UserProgress) bool
}

var achievementRules = []achievementRule{
	{
		achievement: entity.Achievement{ID: "first_completion", Name: "First Step", Description: "Complete your first practice", Icon: "🌱"},
		satisfied:   func(p *entity.UserProgress) bool { return p.TotalCompletions >= 1 },
	},
	{
		achievement: entity.Achievement{ID: "streak_3", Name: "Warming Up", Description: "Keep a 3-day streak", Icon: "🔥"},
		satisfied:   func(p *entity.UserProgress) bool { return p.StreakDays >= 3 },
	},
	{
		achievement: entity.Achievement{ID: "streak_7", Name: "Week Warrior", Description: "Keep a 7-day streak", Icon: "📅"},
		satisfied:   func(p *entity.UserProgress) bool { return p.StreakDays >= 7 },
	},
	{
		achievement: entity.Achievement{ID: "streak_30", Name: "Habit Formed", Description: "Keep a 30-day streak", Icon: "🏆"},
		satisfied:   func(p *entity.UserProgress) bool { return p.StreakDays >= 30 },
	},
	{
		achievement: entity.Achievement{ID: "points_100", Name: "Century", Description: "Earn 100 points", Icon: "💯"},
		satisfied:   func(p *entity.UserProgress) bool { return p.TotalPoints >= 100 },
	},
	{
		achievement: entity.Achievement{ID: "points_500", Name: "Dedicated", Description: "Earn 500 points", Icon: "⭐"},
		satisfied:   func(p *entity.UserProgress) bool { return p.TotalPoints >= 500 },
	},
	{
		achievement: entity.Achievement{ID: "points_1000", Name: "Devotee", Description: "Earn 1000 points", Icon: "🌟"},
		satisfied:   func(p *entity.UserProgress) bool { return p.TotalPoints >= 1000 },
	},
	{
		achievement: entity.Achievement{ID: "level_5", Name: "Rising Cactus", Description: "Reach level 5", Icon: "🌵"},
		satisfied:   func(p *entity.UserProgress) bool { return p.Level >= 5 },
	},
}

// UnlockAchievements appends every newly satisfied achievement and returns
// only the new ones. An achievement is never unlocked twice.
func UnlockAchievements(p *entity.UserProgress, now time.Time) []entity.Achievement {
	unlocked := make([]entity.Achievement, 0)
	for _, rule := range achievementRules {
		if p.HasAchievement(rule.achievement.ID) || !rule.satisfied(p) {
			continue
		}
		a := rule.achievement
		at := now.UTC()
		a.UnlockedAt = &at
		p.Achievements = append(p.Achievements, a)
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// ApplyCompletion folds one completion worth points into p, completed on
// the calendar date today.
func ApplyCompletion(p *entity.UserProgress, points int, today string, now time.Time) []entity.Achievement {
	p.TotalPoints += points
	p.TotalCompletions++
	p.Level = LevelFor(p.TotalPoints)
	p.NextLevelPoints = NextLevelPoints(p.Level)
	p.StreakDays = NextStreak(p.StreakDays, p.LastCompletionDate, today)
	p.LastCompletionDate = today
	if p.StreakDays > p.LongestStreak {
		p.LongestStreak = p.StreakDays
	}
	return UnlockAchievements(p, now)
}
