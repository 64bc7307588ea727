package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerpath/internal/app"
	"careerpath/internal/config"
	"careerpath/internal/pkg/logger"
)

func main() {
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

	bootstrap, cleanup, err := app.Bootstrap(cfg, log)
	if err != nil {
		log.Fatal("failed to bootstrap app", "error", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", "error", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatal("invalid HTTP port", "error", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr, "env", cfg.App.Environment)
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
		}
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			log.Warn("shutdown error", "error", err)
		}
	}
}
