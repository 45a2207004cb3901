package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"workforce/internal/app/server"
	"workforce/internal/platform/config"
	"workforce/internal/platform/logger"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log.SugaredLogger.Desugar())

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("server init failed", "err", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Error("server failed", "err", err)
	}
}
