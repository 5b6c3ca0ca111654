package cache

import (
	"fmt"
	"log/slog"

	"github.com/limbo/coco/pkg/cleanup"
)

type Config struct {
	// sqlite, redis or memory
	Driver     string
	SQLitePath string
	RedisAddr  string
}

// NewFromConfig builds the configured cache and registers its Close for shutdown.
func NewFromConfig(cfg Config) (LocalCacheI, error) {
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			path = "./data/coco-cache.db"
		}
		c := NewSQLiteCache(path)
		if err := c.Init(); err != nil {
			return nil, err
		}
		cleanup.Register(&cleanup.Job{
			Name: "closing sqlite cache",
			F: func() error {
				return c.Close()
			},
		})
		slog.Info("local cache ready", slog.String("driver", "sqlite"), slog.String("path", path))
		return c, nil
	case "redis":
		c, err := NewRedisCache(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		cleanup.Register(&cleanup.Job{
			Name: "closing redis cache",
			F: func() error {
				return c.Close()
			},
		})
		slog.Info("local cache ready", slog.String("driver", "redis"), slog.String("addr", cfg.RedisAddr))
		return c, nil
	case "memory":
		slog.Warn("local cache is in-memory, snapshots are lost on restart")
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
