package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"car-rental-api/internal/pkg/config"
	"car-rental-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the reservation sweep on a fixed interval for the
// lifetime of the application. One run executes immediately on start so
// a restart cannot miss a day.
func StartSweeper(lc fx.Lifecycle, cfg config.Config, sweep commands.SweepCommands, logger *slog.Logger) {
	if !cfg.Sweep.Enabled {
		logger.Info("reservation sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)

				runOnce(ctx, sweep, logger)

				ticker := time.NewTicker(cfg.Sweep.Interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						runOnce(ctx, sweep, logger)
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func runOnce(ctx context.Context, sweep commands.SweepCommands, logger *slog.Logger) {
	result, err := sweep.RunSweep(ctx)
	if err != nil {
		logger.Error("reservation sweep failed", "error", err)
		return
	}
	logger.Info("reservation sweep finished",
		"activated", result.Activated,
		"completed", result.Completed,
		"cancelled", result.Cancelled,
	)
}
