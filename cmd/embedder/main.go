package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerpath/internal/config"
	dbpostgres "careerpath/internal/database/postgres"
	"careerpath/internal/infrastructure/cache"
	"careerpath/internal/infrastructure/embedding"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"
	"careerpath/internal/usecase"
)

func main() {
	workers := flag.Int("workers", 4, "concurrent embedding requests per batch")
	rps := flag.Int("rps", 0, "max embedding requests per second (0 = unlimited)")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		boot, _ := logger.New("development")
		boot.Fatal("failed to load config", "error", err)
	}

	log, err := logger.New(cfg.App.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect database", "error", err)
	}
	defer func() { _ = db.Close() }()

	redis := cache.NewRedis(cfg.Redis, log)
	defer func() { _ = redis.Close() }()

	backfill := usecase.NewEmbeddingBackfill(
		repository.NewPostgresCourseRepository(db),
		embedding.New(cfg.Embedding, redis, log),
		*workers,
		*rps,
		log,
	)

	n, err := backfill.Run(ctx)
	if err != nil {
		log.Error("embedding backfill stopped", "updated", n, "error", err)
		os.Exit(1)
	}
	log.Info("embedding backfill finished", "updated", n)
}
