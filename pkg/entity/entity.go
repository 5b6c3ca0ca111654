package entity

import (
	"time"

	"github.com/google/uuid"
)

// Calendar dates (completion days, streak anchors) are stored in this layout.
const DateLayout = "2006-01-02"

type Practice struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Benefits         []string   `json:"benefits"`
	PointsPerMinute  float64    `json:"pointsPerMinute"`
	Tags             []string   `json:"tags,omitempty"`
	Category         string     `json:"category,omitempty"`
	IsSystemPractice bool       `json:"isSystemPractice"`
	CreatedByUserID  *uuid.UUID `json:"createdByUserId,omitempty"`
}

// PracticeState is the per-user row stored next to a practice.
// IsDaily is the only record of daily membership.
type PracticeState struct {
	PracticeID      int64  `json:"practiceId"`
	IsDaily         bool   `json:"isDaily"`
	Streak          int    `json:"streak"`
	LastCompletedOn string `json:"lastCompletedOn,omitempty"`
}

// UserPractice is a practice as seen by one user.
type UserPractice struct {
	Practice
	IsDaily         bool   `json:"isDaily"`
	Streak          int    `json:"streak"`
	LastCompletedOn string `json:"lastCompletedOn,omitempty"`
}

func (up UserPractice) State() PracticeState {
	return PracticeState{
		PracticeID:      up.ID,
		IsDaily:         up.IsDaily,
		Streak:          up.Streak,
		LastCompletedOn: up.LastCompletedOn,
	}
}

type CompletionEvent struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	PracticeID      int64     `json:"practiceId"`
	CompletedAt     time.Time `json:"completedAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Points          int       `json:"points"`
}

type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

type UserProgress struct {
	TotalPoints        int           `json:"totalPoints"`
	Level              int           `json:"level"`
	NextLevelPoints    int           `json:"nextLevelPoints"`
	StreakDays         int           `json:"streakDays"`
	LongestStreak      int           `json:"longestStreak"`
	TotalCompletions   int           `json:"totalCompletions"`
	LastCompletionDate string        `json:"lastCompletionDate,omitempty"`
	Achievements       []Achievement `json:"achievements"`
}

func (p UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// UserState is what the remote store knows about a user.
// Progress is nil when the user has never been saved.
type UserState struct {
	Practices      []Practice
	PracticeStates map[int64]PracticeState
	Progress       *UserProgress
}

func (s *UserState) Empty() bool {
	return s == nil || (len(s.PracticeStates) == 0 && s.Progress == nil)
}

// SyncState holds writes that have not reached the remote store yet.
type SyncState struct {
	Unsynced           bool              `json:"unsynced,omitempty"`
	PendingSave        bool              `json:"pendingSave,omitempty"`
	PendingDaily       map[int64]bool    `json:"pendingDaily,omitempty"`
	PendingCompletions []CompletionEvent `json:"pendingCompletions,omitempty"`
}

type UserPracticeSnapshot struct {
	Practices        []UserPractice    `json:"practices"`
	Progress         UserProgress      `json:"progress"`
	TodayCompletions []CompletionEvent `json:"todayCompletions,omitempty"`
	Sync             *SyncState        `json:"sync,omitempty"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}
