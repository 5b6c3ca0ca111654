package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"
	"gopkg.in/yaml.v3"

	"github.com/limbo/coco/internal/cache"
	"github.com/limbo/coco/internal/catalog"
	"github.com/limbo/coco/internal/repository"
	"github.com/limbo/coco/pkg/config"
	jwtservice "github.com/limbo/coco/pkg/jwt_service"
)

type Context struct {
	Config *config.Config
	Out    io.Writer
}

func (c *Context) pgConfig() *repository.PGCfg {
	return &repository.PGCfg{
		Address:  c.Config.GetString("POSTGRES_DB_ADDRESS"),
		Username: c.Config.GetString("POSTGRES_USER"),
		Password: c.Config.GetString("POSTGRES_PASSWORD"),
		DB:       c.Config.GetString("POSTGRES_DB"),
		Params:   c.Config.GetString("POSTGRES_PARAMS"),
	}
}

func (c *Context) cache() (cache.LocalCacheI, error) {
	return cache.NewFromConfig(cache.Config{
		Driver:     c.Config.GetStringOr("CACHE_DRIVER", "sqlite"),
		SQLitePath: c.Config.GetString("CACHE_SQLITE_PATH"),
		RedisAddr:  c.Config.GetStringOr("REDIS_ADDR", "localhost:6379"),
	})
}

func openMigrationsDB(c *Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", c.pgConfig().ConnString())
	if err != nil {
		return nil, err
	}
	if err = goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type MigrateUpCmd struct {
	Dir string `help:"Migrations directory." type:"existingdir" default:"./migrations"`
}

func (cmd *MigrateUpCmd) Run(c *Context) error {
	db, err := openMigrationsDB(c)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.Up(db, cmd.Dir)
}

type MigrateDownCmd struct {
	Dir string `help:"Migrations directory." type:"existingdir" default:"./migrations"`
}

func (cmd *MigrateDownCmd) Run(c *Context) error {
	db, err := openMigrationsDB(c)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.Down(db, cmd.Dir)
}

type MigrateStatusCmd struct {
	Dir string `help:"Migrations directory." type:"existingdir" default:"./migrations"`
}

func (cmd *MigrateStatusCmd) Run(c *Context) error {
	db, err := openMigrationsDB(c)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.Status(db, cmd.Dir)
}

type SeedCmd struct {
	Timeout time.Duration `help:"Timeout for the upsert." default:"30s"`
}

func (cmd *SeedCmd) Run(c *Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()
	pool, err := repository.NewPool(ctx, c.pgConfig())
	if err != nil {
		return err
	}
	practices, err := catalog.Default()
	if err != nil {
		return err
	}
	if err = repository.NewGateway(pool).UpsertSystemPractices(ctx, practices.Practices()); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "upserted %d system practices\n", len(practices.Practices()))
	return nil
}

type CacheShowCmd struct {
	User   uuid.UUID `help:"User id." required:""`
	Format string    `help:"Output format." enum:"json,yaml" default:"json"`
}

func (cmd *CacheShowCmd) Run(c *Context) error {
	lc, err := c.cache()
	if err != nil {
		return err
	}
	snapshot, err := lc.Load(cmd.User)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("no cached snapshot for %s", cmd.User)
	}
	if cmd.Format == "yaml" {
		// round trip through json so yaml keys follow the json names
		raw, err := sonic.Marshal(snapshot)
		if err != nil {
			return err
		}
		var doc any
		if err = sonic.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(c.Out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	}
	raw, err := sonic.ConfigStd.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.Out, string(raw))
	return err
}

type CacheUsersCmd struct{}

func (cmd *CacheUsersCmd) Run(c *Context) error {
	lc, err := c.cache()
	if err != nil {
		return err
	}
	lister, ok := lc.(interface{ Users() ([]uuid.UUID, error) })
	if !ok {
		return errors.New("configured cache driver can't list users")
	}
	uids, err := lister.Users()
	if err != nil {
		return err
	}
	for _, uid := range uids {
		fmt.Fprintln(c.Out, uid.String())
	}
	return nil
}

type CacheClearCmd struct {
	User uuid.UUID `help:"User id." required:""`
}

func (cmd *CacheClearCmd) Run(c *Context) error {
	lc, err := c.cache()
	if err != nil {
		return err
	}
	if err = lc.Clear(cmd.User); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "cleared snapshot of %s\n", cmd.User)
	return nil
}

type TokenCmd struct {
	User uuid.UUID     `help:"User id, random when omitted."`
	TTL  time.Duration `help:"Token lifetime." default:"24h"`
}

func (cmd *TokenCmd) Run(c *Context) error {
	secret := c.Config.GetString("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	uid := cmd.User
	if uid == uuid.Nil {
		uid = uuid.New()
	}
	token, err := jwtservice.New(secret).WithTTL(cmd.TTL).GenerateToken(uid)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "user:  %s\ntoken: %s\n", uid, token)
	return nil
}
