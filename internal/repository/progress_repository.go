package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/limbo/coco/pkg/entity"
)

type ProgressRepository struct {
	conn PgConnection
}

func NewProgressRepoWithConn(conn PgConnection) *ProgressRepository {
	return &ProgressRepository{
		conn: conn,
	}
}

func (pr *ProgressRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.UserProgress, error) {
	row := pr.conn.QueryRow(ctx, `SELECT total_points, level, next_level_points, streak_days, longest_streak, total_completions, last_completion_date, achievements
		FROM user_progress WHERE user_id = $1;`, uid)
	var (
		p              entity.UserProgress
		lastCompletion *time.Time
		achievements   []byte
	)
	err := row.Scan(&p.TotalPoints, &p.Level, &p.NextLevelPoints, &p.StreakDays, &p.LongestStreak,
		&p.TotalCompletions, &lastCompletion, &achievements)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.New("getting progress error: " + err.Error())
	}
	p.LastCompletionDate = formatDate(lastCompletion)
	p.Achievements = make([]entity.Achievement, 0)
	if len(achievements) > 0 {
		if err = sonic.Unmarshal(achievements, &p.Achievements); err != nil {
			return nil, errors.New("unmarshalling achievements error: " + err.Error())
		}
	}
	return &p, nil
}

func (pr *ProgressRepository) Upsert(ctx context.Context, exec Executor, uid uuid.UUID, progress *entity.UserProgress) error {
	if progress == nil {
		return errors.New("progress is nil")
	}
	if exec == nil {
		exec = pr.conn
	}
	achievements := progress.Achievements
	if achievements == nil {
		achievements = []entity.Achievement{}
	}
	raw, err := sonic.Marshal(achievements)
	if err != nil {
		return errors.New("marshalling achievements error: " + err.Error())
	}
	_, err = exec.Exec(ctx, `INSERT INTO user_progress (user_id, total_points, level, next_level_points, streak_days, longest_streak, total_completions, last_completion_date, achievements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET total_points = EXCLUDED.total_points, level = EXCLUDED.level,
		next_level_points = EXCLUDED.next_level_points, streak_days = EXCLUDED.streak_days,
		longest_streak = EXCLUDED.longest_streak, total_completions = EXCLUDED.total_completions,
		last_completion_date = EXCLUDED.last_completion_date, achievements = EXCLUDED.achievements, updated_at = NOW();`,
		uid,
		progress.TotalPoints,
		progress.Level,
		progress.NextLevelPoints,
		progress.StreakDays,
		progress.LongestStreak,
		progress.TotalCompletions,
		parseDate(progress.LastCompletionDate),
		raw,
	)
	if err != nil {
		return errors.New("saving progress error: " + err.Error())
	}
	return nil
}
