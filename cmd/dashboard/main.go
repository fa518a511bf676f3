package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"marketdash/config"
	"marketdash/internal/dashboard/app"
	"marketdash/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run dashboard until interrupted
	if err := app.Run(ctx, cfg, log); err != nil {
		log.Error("dashboard failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
