package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/limbo/coco/pkg/cleanup"
	"github.com/limbo/coco/pkg/config"
	"github.com/limbo/coco/pkg/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Env     string `help:"Env file path." type:"path" env:"CONFIG_PATH" default:"./configs/.env"`

	Migrate struct {
		Up     MigrateUpCmd     `cmd:"" help:"Apply all pending migrations."`
		Down   MigrateDownCmd   `cmd:"" help:"Roll back the latest migration."`
		Status MigrateStatusCmd `cmd:"" help:"Show migration status."`
	} `cmd:"" help:"Manage the remote store schema."`
	Seed  SeedCmd `cmd:"" help:"Upsert the system practice catalog."`
	Cache struct {
		Show  CacheShowCmd  `cmd:"" help:"Print the cached snapshot of a user."`
		Users CacheUsersCmd `cmd:"" help:"List users with a cached snapshot (sqlite only)."`
		Clear CacheClearCmd `cmd:"" help:"Drop the cached snapshot of a user."`
	} `cmd:"" help:"Inspect the local cache."`
	Token TokenCmd `cmd:"" help:"Issue a development bearer token."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cococtl"),
		kong.Description("Maintenance tool for the Caktus Coco practice tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	os.Setenv("CONFIG_PATH", CLI.Env)
	cfg := config.New()
	if _, err := logger.New(logger.Config{
		Level:  cfg.GetStringOr("LOG_LEVEL", "warn"),
		Format: cfg.GetStringOr("LOG_FORMAT", "text"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err := ctx.Run(&Context{Config: cfg, Out: os.Stdout})
	cleanup.CleanUp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
