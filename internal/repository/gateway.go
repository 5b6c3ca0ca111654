package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/pkg/entity"
)

// Gateway implements PersistenceGatewayI on top of the table repositories.
type Gateway struct {
	conn          PgConnection
	practices     PracticesRepositoryI
	userPractices UserPracticesRepositoryI
	completions   CompletionsRepositoryI
	progress      ProgressRepositoryI
}

func NewGateway(conn PgConnection) *Gateway {
	return &Gateway{
		conn:          conn,
		practices:     NewPracticesRepoWithConn(conn),
		userPractices: NewUserPracticesRepoWithConn(conn),
		completions:   NewCompletionsRepoWithConn(conn),
		progress:      NewProgressRepoWithConn(conn),
	}
}

func (g *Gateway) LoadUserState(ctx context.Context, uid uuid.UUID) (*entity.UserState, error) {
	practices, err := g.practices.GetVisible(ctx, uid)
	if err != nil {
		return nil, err
	}
	states, err := g.userPractices.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	progress, err := g.progress.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &entity.UserState{
		Practices:      practices,
		PracticeStates: states,
		Progress:       progress,
	}, nil
}

// SaveUserState stores progress and per-practice streaks in one transaction.
// Daily flags are left to SetDailyFlag.
func (g *Gateway) SaveUserState(ctx context.Context, uid uuid.UUID, snapshot *entity.UserPracticeSnapshot) error {
	if snapshot == nil {
		return errors.New("snapshot is nil")
	}
	tx, err := g.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning state transaction error: " + err.Error())
	}
	if err = g.progress.Upsert(ctx, tx, uid, &snapshot.Progress); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	for _, p := range snapshot.Practices {
		if p.Streak == 0 && p.LastCompletedOn == "" {
			continue
		}
		if err = g.userPractices.SaveStreak(ctx, tx, uid, p.State()); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing state error: " + err.Error())
	}
	return nil
}

func (g *Gateway) RecordCompletion(ctx context.Context, event *entity.CompletionEvent) error {
	return g.completions.Create(ctx, event)
}

func (g *Gateway) SetDailyFlag(ctx context.Context, uid uuid.UUID, practiceID int64, isDaily bool) error {
	return g.userPractices.SetDaily(ctx, uid, practiceID, isDaily)
}

func (g *Gateway) ListCompletions(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.CompletionEvent, error) {
	return g.completions.GetByUserAndRange(ctx, uid, from, to)
}

func (g *Gateway) CreatePractice(ctx context.Context, practice *entity.Practice) (*entity.Practice, error) {
	id, err := g.practices.Create(ctx, practice)
	if err != nil {
		return nil, err
	}
	created := *practice
	created.ID = id
	created.IsSystemPractice = false
	return &created, nil
}

func (g *Gateway) DeletePractice(ctx context.Context, uid uuid.UUID, practiceID int64) error {
	practice, err := g.practices.GetByID(ctx, practiceID)
	if err != nil {
		return err
	}
	if practice.IsSystemPractice {
		return errorvalues.ErrSystemPractice
	}
	if practice.CreatedByUserID == nil || *practice.CreatedByUserID != uid {
		return errorvalues.ErrWrongOwner
	}
	return g.practices.Delete(ctx, practiceID)
}

func (g *Gateway) UpsertSystemPractices(ctx context.Context, practices []entity.Practice) error {
	return g.practices.UpsertSystem(ctx, practices)
}
