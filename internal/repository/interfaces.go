package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/coco/pkg/entity"
)

type PracticesRepositoryI interface {
	// Lists system practices together with the ones created by uid, ordered by id
	GetVisible(ctx context.Context, uid uuid.UUID) ([]entity.Practice, error)
	// Searches practice with given id
	GetByID(ctx context.Context, id int64) (*entity.Practice, error)
	// Creates user-authored practice. CreatedByUserID is necessary
	Create(ctx context.Context, practice *entity.Practice) (int64, error)
	// Deletes user-authored practice. System practices are never deleted
	Delete(ctx context.Context, id int64) error
	// Inserts or refreshes the built-in catalog, keeping ids
	UpsertSystem(ctx context.Context, practices []entity.Practice) error
}

type UserPracticesRepositoryI interface {
	// Returns explicit per-practice rows of the user keyed by practice id
	GetByUserID(ctx context.Context, uid uuid.UUID) (map[int64]entity.PracticeState, error)
	// Sets daily flag. The only writer of is_daily
	SetDaily(ctx context.Context, uid uuid.UUID, practiceID int64, isDaily bool) error
	// Stores streak counters without touching is_daily
	SaveStreak(ctx context.Context, exec Executor, uid uuid.UUID, state entity.PracticeState) error
}

type CompletionsRepositoryI interface {
	// Appends completion. Repeated ids are ignored
	Create(ctx context.Context, event *entity.CompletionEvent) error
	// Provides completions of uid in [from, to)
	GetByUserAndRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.CompletionEvent, error)
}

type ProgressRepositoryI interface {
	// Returns nil without error when the user has no progress yet
	GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.UserProgress, error)
	Upsert(ctx context.Context, exec Executor, uid uuid.UUID, progress *entity.UserProgress) error
}

// PersistenceGatewayI is the remote store as seen by the practice engine.
// Every call may fail transiently.
type PersistenceGatewayI interface {
	LoadUserState(ctx context.Context, uid uuid.UUID) (*entity.UserState, error)
	SaveUserState(ctx context.Context, uid uuid.UUID, snapshot *entity.UserPracticeSnapshot) error
	RecordCompletion(ctx context.Context, event *entity.CompletionEvent) error
	SetDailyFlag(ctx context.Context, uid uuid.UUID, practiceID int64, isDaily bool) error
	ListCompletions(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.CompletionEvent, error)
	CreatePractice(ctx context.Context, practice *entity.Practice) (*entity.Practice, error)
	DeletePractice(ctx context.Context, uid uuid.UUID, practiceID int64) error
	UpsertSystemPractices(ctx context.Context, practices []entity.Practice) error
}

type DBConfig interface {
	ConnString() string
}

// Executor is satisfied by both a connection and a transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
	// Extra connection parameters, e.g. "sslmode=disable"
	Params string
}

func (pgcfg *PGCfg) ConnString() string {
	conn := fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
	if pgcfg.Params != "" {
		conn += "?" + pgcfg.Params
	}
	return conn
}
