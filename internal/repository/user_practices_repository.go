package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/pkg/entity"
)

type UserPracticesRepository struct {
	conn PgConnection
}

func NewUserPracticesRepoWithConn(conn PgConnection) *UserPracticesRepository {
	return &UserPracticesRepository{
		conn: conn,
	}
}

func (upr *UserPracticesRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (map[int64]entity.PracticeState, error) {
	rows, err := upr.conn.Query(ctx,
		`SELECT practice_id, is_daily, streak, last_completed_on FROM user_practices WHERE user_id = $1;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting user practices error: " + err.Error())
	}
	defer rows.Close()
	states := make(map[int64]entity.PracticeState)
	for rows.Next() {
		var (
			state         entity.PracticeState
			lastCompleted *time.Time
		)
		if err = rows.Scan(&state.PracticeID, &state.IsDaily, &state.Streak, &lastCompleted); err != nil {
			return nil, errors.New("user practice row parsing error: " + err.Error())
		}
		state.LastCompletedOn = formatDate(lastCompleted)
		states[state.PracticeID] = state
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected user practice rows error: " + err.Error())
	}
	return states, nil
}

func (upr *UserPracticesRepository) SetDaily(ctx context.Context, uid uuid.UUID, practiceID int64, isDaily bool) error {
	_, err := upr.conn.Exec(ctx, `INSERT INTO user_practices (user_id, practice_id, is_daily) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, practice_id) DO UPDATE SET is_daily = EXCLUDED.is_daily, updated_at = NOW();`,
		uid,
		practiceID,
		isDaily,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrPracticeNotFound
			}
		}
		return errors.New("setting daily flag error: " + err.Error())
	}
	return nil
}

func (upr *UserPracticesRepository) SaveStreak(ctx context.Context, exec Executor, uid uuid.UUID, state entity.PracticeState) error {
	if exec == nil {
		exec = upr.conn
	}
	_, err := exec.Exec(ctx, `INSERT INTO user_practices (user_id, practice_id, streak, last_completed_on) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, practice_id) DO UPDATE SET streak = EXCLUDED.streak, last_completed_on = EXCLUDED.last_completed_on, updated_at = NOW();`,
		uid,
		state.PracticeID,
		state.Streak,
		parseDate(state.LastCompletedOn),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return errorvalues.ErrPracticeNotFound
			}
		}
		return errors.New("saving practice streak error: " + err.Error())
	}
	return nil
}
