package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, grade *FuelGrade) error
	FindByName(ctx context.Context, db *gorm.DB, name string) (*FuelGrade, error)

	// LockByName reads a grade under a row lock when the dialect supports
	// one, so the caller's transaction observes a stable price and stock.
	LockByName(ctx context.Context, db *gorm.DB, name string) (*FuelGrade, error)

	List(ctx context.Context, db *gorm.DB) ([]FuelGrade, error)
	UpdatePrice(ctx context.Context, db *gorm.DB, name string, price decimal.Decimal) (int64, error)
	UpdateStock(ctx context.Context, db *gorm.DB, name string, stock decimal.Decimal) (int64, error)

	// DecrementStock replaces the stock of a grade only when it still holds
	// the observed value. It reports whether the swap happened.
	DecrementStock(ctx context.Context, db *gorm.DB, name string, observed, next decimal.Decimal) (bool, error)
}
