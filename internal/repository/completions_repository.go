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

type CompletionsRepository struct {
	conn PgConnection
}

func NewCompletionsRepoWithConn(conn PgConnection) *CompletionsRepository {
	return &CompletionsRepository{
		conn: conn,
	}
}

func (cr *CompletionsRepository) Create(ctx context.Context, event *entity.CompletionEvent) error {
	if event == nil {
		return errors.New("completion is nil")
	}
	_, err := cr.conn.Exec(
		ctx,
		`INSERT INTO completions (id, user_id, practice_id, completed_at, duration_minutes, points) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING;`,
		event.ID,
		event.UserID,
		event.PracticeID,
		event.CompletedAt,
		event.DurationMinutes,
		event.Points,
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
		return errors.New("creating completion error: " + err.Error())
	}
	return nil
}

func (cr *CompletionsRepository) GetByUserAndRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.CompletionEvent, error) {
	rows, err := cr.conn.Query(
		ctx,
		`SELECT id, user_id, practice_id, completed_at, duration_minutes, points FROM completions WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3 ORDER BY completed_at;`,
		uid,
		from,
		to,
	)
	if err != nil {
		return nil, errors.New("getting completions for period error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.CompletionEvent, 0, 2)
	for rows.Next() {
		ev := entity.CompletionEvent{}
		err = rows.Scan(&ev.ID, &ev.UserID, &ev.PracticeID, &ev.CompletedAt, &ev.DurationMinutes, &ev.Points)
		if err != nil {
			return nil, errors.New("completion row parsing error: " + err.Error())
		}
		result = append(result, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected completion rows error: " + err.Error())
	}
	return result, nil
}
