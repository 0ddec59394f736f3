package main

import (
	"github.com/jetrefuels/fuelpos/internal/clock"
	"github.com/jetrefuels/fuelpos/internal/config"
	"github.com/jetrefuels/fuelpos/internal/inventory"
	"github.com/jetrefuels/fuelpos/internal/logger"
	"github.com/jetrefuels/fuelpos/internal/migration"
	"github.com/jetrefuels/fuelpos/internal/pricesync"
	"github.com/jetrefuels/fuelpos/pkg/db"
	"github.com/jetrefuels/fuelpos/pkg/id"
	"go.uber.org/fx"
)

// Standalone price synchronizer for deployments that keep the POS server
// and the back-office price feed on separate hosts.
func main() {
	fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		id.Module,
		db.Module,
		migration.Module,
		inventory.Module,
		pricesync.Module,
	).Run()
}
