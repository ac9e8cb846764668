package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ideogram-ai-bot/internal/config"
	"ideogram-ai-bot/internal/handlers"
	"ideogram-ai-bot/internal/httpclient"
	"ideogram-ai-bot/internal/params"
	"ideogram-ai-bot/internal/pipeline"
	"ideogram-ai-bot/internal/replicate"
	"ideogram-ai-bot/internal/session"
	"ideogram-ai-bot/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	tg, err := telegram.New(telegram.Options{
		Token:      cfg.TelegramToken,
		HTTPClient: httpClient,
		Logger:     logger,
		Debug:      cfg.Debug,
	})
	if err != nil {
		logger.Error("telegram init failed", "err", err)
		os.Exit(1)
	}

	rep := replicate.New(replicate.Options{
		APIToken:     cfg.ReplicateToken,
		BaseURL:      cfg.ReplicateBaseURL,
		Model:        cfg.ReplicateModel,
		PollInterval: cfg.PollInterval,
		HTTPClient:   httpClient,
		Logger:       logger,
	})

	pipe := pipeline.New(pipeline.Options{
		Generator: rep,
		Defaults: params.Defaults{
			Style:       cfg.DefaultStyle,
			AspectRatio: cfg.DefaultAspectRatio,
			Resolution:  cfg.DefaultResolution,
		},
		Logger: logger,
	})

	handler := handlers.New(handlers.Options{
		Telegram: tg,
		Pipeline: pipe,
		Sessions: session.NewStore(),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bot started", "username", tg.Username(), "model", cfg.ReplicateModel)

	updates := tg.Updates(telegram.UpdatesOptions{
		Timeout: 30 * time.Second,
	})
	defer tg.StopUpdates()

	sem := make(chan struct{}, cfg.MaxConcurrent)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info("updates channel closed")
				return
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}

			go func(update telegram.Update) {
				defer func() { <-sem }()

				reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
				defer cancel()

				if err := handler.HandleUpdate(reqCtx, update); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("handle update failed", "err", err)
				}
			}(update)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
