package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pennant/internal/config"
	"pennant/internal/db"
	"pennant/internal/game"

	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := game.NewService(pool, logger)
	if err := svc.Migrate(ctx); err != nil {
		logger.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	if cfg.RunOnce {
		if err := runDelegatedTick(ctx, logger, svc); err != nil {
			logger.Error("tick failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed")
		return
	}

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	logger.Info("worker started", "tick_every", cfg.TickInterval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutdown")
			return
		case <-ticker.C:
			if err := runDelegatedTick(ctx, logger, svc); err != nil {
				logger.Error("delegated tick failed", "err", err)
				continue
			}
		}
	}
}

// runDelegatedTick plays one front-office decision for every save on
// autopilot. One action per save per tick keeps each step auditable in the
// idempotency log.
func runDelegatedTick(ctx context.Context, logger *slog.Logger, svc *game.Service) error {
	ids, err := svc.ListDelegated(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		save, err := svc.GetSave(ctx, id)
		if err != nil {
			logger.Error("delegated save read failed", "save_id", id, "err", err)
			continue
		}
		action := game.NextCPUAction(save.State)
		if _, err := svc.ApplyAction(ctx, game.ApplyActionInput{
			SaveID:         id,
			Action:         action,
			IdempotencyKey: uuid.NewString(),
		}); err != nil {
			logger.Error("delegated action failed", "save_id", id, "action", action.Kind, "err", err)
			continue
		}
		logger.Info("delegated action applied", "save_id", id, "action", action.Kind, "week", save.State.Week)
	}
	return nil
}
