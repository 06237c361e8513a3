package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/photoshare/photoshare/internal/api"
	"github.com/photoshare/photoshare/internal/core/ports"
	"github.com/photoshare/photoshare/internal/infrastructure/cleanup"
	"github.com/photoshare/photoshare/internal/infrastructure/config"
	"github.com/photoshare/photoshare/internal/infrastructure/db/postgres"
	redisinfra "github.com/photoshare/photoshare/internal/infrastructure/db/redis"
	"github.com/photoshare/photoshare/internal/infrastructure/storage"
	"github.com/photoshare/photoshare/pkg/logger"
)

const cleanupWorkers = 4

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	var (
		blobs      ports.BlobStore
		uploadsDir string
	)
	switch cfg.Storage.Driver {
	case "local":
		local, err := storage.NewLocalStore(cfg.Storage.LocalPath, cfg.Storage.LocalBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("local storage init failed")
		}
		blobs = local
		uploadsDir = cfg.Storage.LocalPath
	case "gcs":
		gcsStore, err := storage.NewGCSStore(ctx, cfg.Storage.GCSBucket, cfg.Storage.GCSCredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("gcs storage init failed")
		}
		defer gcsStore.Close()
		blobs = gcsStore
	default:
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("unknown storage driver")
	}

	dispatcher := cleanup.NewDispatcher(cleanupWorkers, blobs, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Pool:       pool,
		Redis:      rdb,
		Blobs:      blobs,
		Cleaner:    dispatcher,
		JWTSecret:  cfg.JWTSecret,
		Log:        log,
		UploadsDir: uploadsDir,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("photoshare api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
