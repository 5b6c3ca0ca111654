package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limbo/coco/pkg/cleanup"
	"github.com/limbo/coco/pkg/entity"
)

// NewPool opens the shared pgx pool and registers its shutdown. Connections
// are made lazily, an unreachable server at start is only logged so engines
// can run from the local cache until it comes up.
func NewPool(ctx context.Context, cfg DBConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("creating pgxpool error: " + err.Error())
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		slog.Warn("postgres is unreachable, starting without it", slog.String("error", err.Error()))
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(entity.DateLayout)
}

// textArray keeps NOT NULL text[] columns from receiving NULL, pgx encodes a
// nil slice as NULL.
func textArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
