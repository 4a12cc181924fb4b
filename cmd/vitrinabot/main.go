package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitrinabot/app"
	"vitrinabot/core/buildinfo"
	coreconfig "vitrinabot/core/config"
	"vitrinabot/core/logger"
	"vitrinabot/core/telegram"

	"log/slog"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vitrinabot:", err)
		os.Exit(1)
	}
}

func run() error {
	start := time.Now()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Shutdown() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.L.Info("starting",
		slog.String("event", "app.boot"),
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.Commit),
		slog.String("mode", cfg.Telegram.RunMode),
		slog.Duration("duration", logger.Took(start)),
	)

	application := app.New(cfg)
	if err := telegram.RunTelegram(ctx, application.RunOptions()); err != nil {
		logger.L.Error("stopped with error",
			slog.String("event", "app.stop"),
			slog.String("err", err.Error()),
		)
		return err
	}

	logger.L.Info("stopped",
		slog.String("event", "app.stop"),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}
