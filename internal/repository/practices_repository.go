package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/pkg/entity"
)

const practiceColumns = `id, name, description, benefits, points_per_minute, tags, category, is_system, created_by`

type PracticesRepository struct {
	conn PgConnection
}

func NewPracticesRepoWithConn(conn PgConnection) *PracticesRepository {
	return &PracticesRepository{
		conn: conn,
	}
}

func scanPractice(row pgx.Row) (*entity.Practice, error) {
	var p entity.Practice
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Benefits, &p.PointsPerMinute,
		&p.Tags, &p.Category, &p.IsSystemPractice, &p.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	if p.Benefits == nil {
		p.Benefits = []string{}
	}
	return &p, nil
}

func (pr *PracticesRepository) GetVisible(ctx context.Context, uid uuid.UUID) ([]entity.Practice, error) {
	rows, err := pr.conn.Query(ctx, `SELECT `+practiceColumns+` FROM practices WHERE is_system OR created_by = $1 ORDER BY id;`, uid)
	if err != nil {
		return nil, errors.New("getting visible practices error: " + err.Error())
	}
	defer rows.Close()
	practices := make([]entity.Practice, 0)
	for rows.Next() {
		p, err := scanPractice(rows)
		if err != nil {
			return nil, errors.New("unmarshalling practice error: " + err.Error())
		}
		practices = append(practices, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning practices: " + err.Error())
	}
	return practices, nil
}

func (pr *PracticesRepository) GetByID(ctx context.Context, id int64) (*entity.Practice, error) {
	row := pr.conn.QueryRow(ctx, `SELECT `+practiceColumns+` FROM practices WHERE id = $1;`, id)
	p, err := scanPractice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrPracticeNotFound
		}
		return nil, errors.New("getting practice by id error: " + err.Error())
	}
	return p, nil
}

func (pr *PracticesRepository) Create(ctx context.Context, practice *entity.Practice) (int64, error) {
	if practice == nil || practice.CreatedByUserID == nil {
		return 0, errors.New("practice without owner")
	}
	var id int64
	row := pr.conn.QueryRow(ctx, `INSERT INTO practices (name, description, benefits, points_per_minute, tags, category, is_system, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7) RETURNING id;`,
		practice.Name,
		practice.Description,
		textArray(practice.Benefits),
		practice.PointsPerMinute,
		textArray(practice.Tags),
		practice.Category,
		*practice.CreatedByUserID,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return 0, errorvalues.ErrPracticeExists
			}
		}
		return 0, errors.New("creating practice db error: " + err.Error())
	}
	return id, nil
}

func (pr *PracticesRepository) Delete(ctx context.Context, id int64) error {
	ct, err := pr.conn.Exec(ctx, `DELETE FROM practices WHERE id = $1 AND NOT is_system;`, id)
	if err != nil {
		return errors.New("error deleting practice: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrPracticeNotFound
	}
	return nil
}

func (pr *PracticesRepository) UpsertSystem(ctx context.Context, practices []entity.Practice) error {
	tx, err := pr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning catalog transaction error: " + err.Error())
	}
	for _, p := range practices {
		_, err = tx.Exec(ctx, `INSERT INTO practices (id, name, description, benefits, points_per_minute, tags, category, is_system)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,
			benefits = EXCLUDED.benefits, points_per_minute = EXCLUDED.points_per_minute,
			tags = EXCLUDED.tags, category = EXCLUDED.category WHERE practices.is_system;`,
			p.ID, p.Name, p.Description, textArray(p.Benefits), p.PointsPerMinute, textArray(p.Tags), p.Category,
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return errors.New("upserting system practice error: " + err.Error())
		}
	}
	// Keep the serial ahead of explicit catalog ids
	_, err = tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('practices', 'id'), GREATEST((SELECT MAX(id) FROM practices), 1));`)
	if err != nil {
		_ = tx.Rollback(ctx)
		return errors.New("moving practices sequence error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing catalog error: " + err.Error())
	}
	return nil
}
