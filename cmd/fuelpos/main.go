package main

import (
	"github.com/jetrefuels/fuelpos/internal/clock"
	"github.com/jetrefuels/fuelpos/internal/config"
	"github.com/jetrefuels/fuelpos/internal/dispense"
	"github.com/jetrefuels/fuelpos/internal/employee"
	"github.com/jetrefuels/fuelpos/internal/inventory"
	"github.com/jetrefuels/fuelpos/internal/ledger"
	"github.com/jetrefuels/fuelpos/internal/logger"
	"github.com/jetrefuels/fuelpos/internal/migration"
	"github.com/jetrefuels/fuelpos/internal/pricesync"
	"github.com/jetrefuels/fuelpos/internal/server"
	"github.com/jetrefuels/fuelpos/pkg/db"
	"github.com/jetrefuels/fuelpos/pkg/id"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		id.Module,
		db.Module,
		migration.Module,
		employee.Module,
		inventory.Module,
		ledger.Module,
		dispense.Module,
		pricesync.Module,
		server.Module,
	).Run()
}
