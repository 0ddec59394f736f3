package migration

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/jetrefuels/fuelpos/internal/clock"
	"github.com/jetrefuels/fuelpos/internal/config"
	employeedomain "github.com/jetrefuels/fuelpos/internal/employee/domain"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	ledgerdomain "github.com/jetrefuels/fuelpos/internal/ledger/domain"
	"github.com/jetrefuels/fuelpos/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Node   *snowflake.Node
}

var Module = fx.Module("migration",
	fx.Invoke(run),
)

func run(p Params) error {
	if p.DB.Dialector.Name() == "postgres" {
		if err := RunMigrations(p.DB, p.Log); err != nil {
			return err
		}
	} else {
		err := p.DB.AutoMigrate(
			&employeedomain.Employee{},
			&inventorydomain.FuelGrade{},
			&ledgerdomain.TransactionRecord{},
		)
		if err != nil {
			return err
		}
	}

	if p.Config.SeedDefaults {
		return seed.EnsureDefaults(context.Background(), p.DB, p.Log, p.Clock, p.Node)
	}
	return nil
}
