package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	errorvalues "github.com/limbo/coco/internal/error_values"
	"github.com/limbo/coco/pkg/entity"
)

type SQLiteCache struct {
	path string
	db   *sql.DB
}

func NewSQLiteCache(path string) *SQLiteCache {
	return &SQLiteCache{
		path: path,
	}
}

// Init opens the database file, creating it and its directory when missing.
func (c *SQLiteCache) Init() error {
	if c.db != nil {
		return nil
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", c.path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	// One writer keeps SQLITE_BUSY away
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		user_id TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create cache table: %w", err)
	}
	c.db = db
	return nil
}

func (c *SQLiteCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *SQLiteCache) Save(uid uuid.UUID, snapshot *entity.UserPracticeSnapshot) error {
	if c.db == nil {
		return fmt.Errorf("%w: cache not initialized", errorvalues.ErrCache)
	}
	raw, err := encode(snapshot)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(`INSERT INTO snapshots (user_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		uid.String(), raw, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return wrap("saving snapshot", err)
	}
	return nil
}

func (c *SQLiteCache) Load(uid uuid.UUID) (*entity.UserPracticeSnapshot, error) {
	if c.db == nil {
		return nil, fmt.Errorf("%w: cache not initialized", errorvalues.ErrCache)
	}
	var raw []byte
	err := c.db.QueryRow(`SELECT payload FROM snapshots WHERE user_id = ?`, uid.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("loading snapshot", err)
	}
	return decode(raw)
}

func (c *SQLiteCache) Clear(uid uuid.UUID) error {
	if c.db == nil {
		return fmt.Errorf("%w: cache not initialized", errorvalues.ErrCache)
	}
	if _, err := c.db.Exec(`DELETE FROM snapshots WHERE user_id = ?`, uid.String()); err != nil {
		return wrap("clearing snapshot", err)
	}
	return nil
}

// Users lists every user with a cached snapshot.
func (c *SQLiteCache) Users() ([]uuid.UUID, error) {
	if c.db == nil {
		return nil, fmt.Errorf("%w: cache not initialized", errorvalues.ErrCache)
	}
	rows, err := c.db.Query(`SELECT user_id FROM snapshots ORDER BY updated_at DESC`)
	if err != nil {
		return nil, wrap("listing users", err)
	}
	defer rows.Close()
	users := make([]uuid.UUID, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, wrap("listing users", err)
		}
		uid, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		users = append(users, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("listing users", err)
	}
	return users, nil
}
