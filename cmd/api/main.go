// @title Practice-tracker API
// @description API for daily practice tracker "Caktus Coco"
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/limbo/coco/internal/api"
	"github.com/limbo/coco/internal/cache"
	"github.com/limbo/coco/internal/catalog"
	"github.com/limbo/coco/internal/repository"
	"github.com/limbo/coco/internal/service"
	"github.com/limbo/coco/pkg/cleanup"
	"github.com/limbo/coco/pkg/config"
	jwtservice "github.com/limbo/coco/pkg/jwt_service"
	"github.com/limbo/coco/pkg/logger"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	lg, err := logger.New(logger.Config{
		Level:  cfg.GetStringOr("LOG_LEVEL", "info"),
		Format: cfg.GetStringOr("LOG_FORMAT", "text"),
		File:   cfg.GetString("LOG_FILE"),
	})
	if err != nil {
		log.Fatal("setting up logger error: ", err)
	}
	defer cleanup.CleanUp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, lg); err != nil {
		lg.Error("service stopped with error", slog.String("error", err.Error()))
		cleanup.CleanUp()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, lg *slog.Logger) error {
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
		Params:   cfg.GetString("POSTGRES_PARAMS"),
	}
	pool, err := repository.NewPool(ctx, &dbCfg)
	if err != nil {
		return err
	}
	gateway := repository.NewGateway(pool)

	practices, err := catalog.Default()
	if err != nil {
		return err
	}
	if ids := cfg.GetInt64List("DEFAULT_DAILY_PRACTICES"); len(ids) > 0 {
		if err = practices.SetDefaultDaily(ids); err != nil {
			return err
		}
	}
	seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = gateway.UpsertSystemPractices(seedCtx, practices.Practices())
	cancel()
	if err != nil {
		// engines still serve the catalog from the fallback list
		lg.Warn("seeding system practices failed", slog.String("error", err.Error()))
	}

	localCache, err := cache.NewFromConfig(cache.Config{
		Driver:     cfg.GetStringOr("CACHE_DRIVER", "sqlite"),
		SQLitePath: cfg.GetString("CACHE_SQLITE_PATH"),
		RedisAddr:  cfg.GetStringOr("REDIS_ADDR", "localhost:6379"),
	})
	if err != nil {
		return err
	}

	tracker := service.NewTracker(ctx, gateway, localCache, service.EngineConfig{
		Location:      cfg.GetLocation("TIMEZONE"),
		SyncTimeout:   cfg.GetDuration("SYNC_TIMEOUT", 5*time.Second),
		RetryInterval: cfg.GetDuration("SYNC_RETRY_INTERVAL", 30*time.Second),
		DefaultDaily:  practices.DefaultDaily(),
		Fallback:      practices.Practices(),
		Logger:        lg,
	})

	serv := api.New(&api.ServicesList{
		Engines:    tracker,
		JwtService: jwtservice.New(cfg.GetString("JWT_SECRET")),
		Health:     pool.Ping,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serv.Run(gctx, cfg.GetStringOr("API_ADDRESS", ":8080"))
	})
	g.Go(func() error {
		<-gctx.Done()
		// pending writes not drained here stay in the local cache
		if err := tracker.Close(); err != nil {
			lg.Warn("some engines closed with unsynced changes", slog.String("error", err.Error()))
		}
		return nil
	})
	return g.Wait()
}
