package pricesync

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	"github.com/jetrefuels/fuelpos/internal/money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Syncer keeps pump prices aligned with an external price list dropped on
// disk by the back office. Grades not present in the file keep their price.
type Syncer struct {
	cfg       Config
	log       *zap.Logger
	inventory inventorydomain.Service
}

func NewSyncer(cfg Config, log *zap.Logger, inventory inventorydomain.Service) *Syncer {
	return &Syncer{
		cfg:       cfg.withDefaults(),
		log:       log.Named("pricesync"),
		inventory: inventory,
	}
}

// SyncOnce applies the price list and reports how many grades changed. A
// missing file is not an error; the back office simply has nothing for us.
func (s *Syncer) SyncOnce(ctx context.Context) (int, error) {
	raw, err := os.ReadFile(s.cfg.File)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Debug("price file absent", zap.String("file", s.cfg.File))
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var prices map[string]string
	if err := json.Unmarshal(raw, &prices); err != nil {
		return 0, err
	}

	updated := 0
	for name, value := range prices {
		price, err := decimal.NewFromString(value)
		if err != nil {
			s.log.Warn("unparsable price skipped",
				zap.String("grade", name), zap.String("value", value))
			continue
		}

		_, err = s.inventory.SetPrice(ctx, name, price)
		switch {
		case err == nil:
			updated++
		case errors.Is(err, inventorydomain.ErrUnknownGrade):
			s.log.Warn("price for unknown grade skipped", zap.String("grade", name))
		case errors.Is(err, money.ErrInvalidPrice):
			s.log.Warn("invalid price skipped",
				zap.String("grade", name), zap.String("value", value))
		default:
			return updated, err
		}
	}
	if updated > 0 {
		s.log.Info("prices synchronized", zap.Int("updated", updated))
	}
	return updated, nil
}

// Run re-applies the price list on a fixed interval and additionally reacts
// to the file changing on disk. It blocks until the context is done.
func (s *Syncer) Run(ctx context.Context) error {
	if _, err := s.SyncOnce(ctx); err != nil {
		s.log.Error("initial price sync failed", zap.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and atomic writers replace
	// the file, which would silently drop a direct watch.
	if err := watcher.Add(filepath.Dir(s.cfg.File)); err != nil {
		s.log.Warn("price file watch unavailable, relying on the interval",
			zap.String("file", s.cfg.File), zap.Error(err))
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.syncAndLog(ctx)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(s.cfg.File) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.syncAndLog(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("price file watcher error", zap.Error(err))
		}
	}
}

func (s *Syncer) syncAndLog(ctx context.Context) {
	if _, err := s.SyncOnce(ctx); err != nil {
		s.log.Error("price sync failed", zap.Error(err))
	}
}
