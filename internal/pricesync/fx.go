package pricesync

import (
	"context"
	"errors"

	"github.com/jetrefuels/fuelpos/internal/config"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("pricesync",
	fx.Provide(provideSyncer),
	fx.Invoke(registerHooks),
)

func provideSyncer(cfg config.Config, log *zap.Logger, inventory inventorydomain.Service) *Syncer {
	return NewSyncer(Config{
		File:     cfg.PriceFile,
		Interval: cfg.PriceSyncInterval,
	}, log, inventory)
}

func registerHooks(lc fx.Lifecycle, log *zap.Logger, syncer *Syncer) {
	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := syncer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("price sync loop exited", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
