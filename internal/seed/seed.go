package seed

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/jetrefuels/fuelpos/internal/clock"
	employeedomain "github.com/jetrefuels/fuelpos/internal/employee/domain"
	"github.com/jetrefuels/fuelpos/internal/employee/password"
	employeerepo "github.com/jetrefuels/fuelpos/internal/employee/repository"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	inventoryrepo "github.com/jetrefuels/fuelpos/internal/inventory/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type defaultEmployee struct {
	id       int64
	name     string
	password string
}

type defaultGrade struct {
	name  string
	label string
	price string
	stock string
}

var defaultEmployees = []defaultEmployee{
	{123456, "Pluto", "pluto_pass"},
	{789012, "Mickey", "mickey_pass"},
	{345678, "Donald", "donald_pass"},
}

var defaultGrades = []defaultGrade{
	{"regular", "Regular", "16.67", "10000.00"},
	{"premium", "Premium", "18.99", "10000.00"},
	{"diesel", "Diesel", "17.50", "10000.00"},
}

// EnsureDefaults provisions the out-of-the-box station: three operators and
// three grades with full tanks. Rows that already exist are left alone, so
// restarting never resets stock or credentials.
func EnsureDefaults(ctx context.Context, db *gorm.DB, log *zap.Logger, clk clock.Clock, node *snowflake.Node) error {
	log = log.Named("seed")
	employees := employeerepo.Provide()
	grades := inventoryrepo.Provide()

	for _, def := range defaultEmployees {
		existing, err := employees.FindByID(ctx, db, def.id)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		hashed, err := password.Hash(def.password)
		if err != nil {
			return err
		}
		err = employees.Insert(ctx, db, &employeedomain.Employee{
			ID:           def.id,
			Name:         def.name,
			PasswordHash: hashed,
			CreatedAt:    clk.Now(),
		})
		if err != nil {
			return err
		}
		log.Info("seeded employee", zap.Int64("employee_id", def.id))
	}

	for _, def := range defaultGrades {
		existing, err := grades.FindByName(ctx, db, def.name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		now := clk.Now()
		err = grades.Insert(ctx, db, &inventorydomain.FuelGrade{
			ID:          node.Generate(),
			Name:        def.name,
			DisplayName: def.label,
			UnitPrice:   decimal.RequireFromString(def.price),
			StockLiters: decimal.RequireFromString(def.stock),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		log.Info("seeded fuel grade", zap.String("grade", def.name))
	}
	return nil
}
