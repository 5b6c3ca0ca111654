package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/limbo/coco/pkg/entity"
)

type CompletePracticeRequest struct {
	DurationMinutes int `json:"durationMinutes" validate:"required,min=1,max=1440"`
}

type CreatePracticeRequest struct {
	Name            string   `json:"name" validate:"required,practice_name,min=2,max=100"`
	Description     string   `json:"description" validate:"max=1000"`
	Benefits        []string `json:"benefits" validate:"max=20,dive,required,max=200"`
	PointsPerMinute float64  `json:"pointsPerMinute" validate:"gt=0,lte=100"`
	Tags            []string `json:"tags" validate:"max=20,dive,required,max=50"`
	Category        string   `json:"category" validate:"max=50"`
	// Puts the new practice straight into the daily set
	AddToDaily bool `json:"addToDaily"`
}

// PracticeEngineI is the per-user practice tracking engine.
type PracticeEngineI interface {
	// Marks practice daily. Idempotent. Remote failures only mark the engine unsynced
	AddToDaily(practiceID int64) error
	// Clears daily flag, never deletes the practice itself
	RemoveFromDaily(practiceID int64) error
	// Records completion happening now, returns points earned by this call
	CompletePractice(practiceID int64, durationMinutes int) (int, error)
	ListDaily() []entity.UserPractice
	ListAll() []entity.UserPractice
	TodayCompletions() []entity.CompletionEvent
	Progress() entity.UserProgress
	Snapshot() *entity.UserPracticeSnapshot
	// Pushes pending writes, then merges remote state with local one
	Refresh(ctx context.Context) error
	// Creates user-authored practice. Needs the remote store
	CreatePractice(ctx context.Context, req *CreatePracticeRequest) (*entity.UserPractice, error)
	// Deletes practice created by the engine's user. Needs the remote store
	DeletePractice(ctx context.Context, practiceID int64) error
	Synced() bool
	LastSyncError() error
}

type EngineProviderI interface {
	// Returns engine of the user, loading it on first use
	ForUser(ctx context.Context, uid uuid.UUID) (PracticeEngineI, error)
}
