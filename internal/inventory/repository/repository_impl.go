package repository

import (
	"context"
	"errors"

	"github.com/jetrefuels/fuelpos/internal/inventory/domain"
	pkgdb "github.com/jetrefuels/fuelpos/pkg/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, grade *domain.FuelGrade) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO fuel_grades (id, name, display_name, unit_price, stock_liters, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		grade.ID,
		grade.Name,
		grade.DisplayName,
		grade.UnitPrice,
		grade.StockLiters,
		grade.CreatedAt,
		grade.UpdatedAt,
	).Error
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.FuelGrade, error) {
	var grade domain.FuelGrade
	err := db.WithContext(ctx).
		Model(&domain.FuelGrade{}).
		Where("name = ?", name).
		Take(&grade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *repo) LockByName(ctx context.Context, db *gorm.DB, name string) (*domain.FuelGrade, error) {
	query := db.WithContext(ctx).
		Model(&domain.FuelGrade{}).
		Where("name = ?", name)
	if pkgdb.SupportsRowLocking(db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var grade domain.FuelGrade
	err := query.Take(&grade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.FuelGrade, error) {
	var grades []domain.FuelGrade
	err := db.WithContext(ctx).
		Model(&domain.FuelGrade{}).
		Order("name asc").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *repo) UpdatePrice(ctx context.Context, db *gorm.DB, name string, price decimal.Decimal) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.FuelGrade{}).
		Where("name = ?", name).
		Update("unit_price", price)
	return res.RowsAffected, res.Error
}

func (r *repo) UpdateStock(ctx context.Context, db *gorm.DB, name string, stock decimal.Decimal) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.FuelGrade{}).
		Where("name = ?", name).
		Update("stock_liters", stock)
	return res.RowsAffected, res.Error
}

func (r *repo) DecrementStock(ctx context.Context, db *gorm.DB, name string, observed, next decimal.Decimal) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.FuelGrade{}).
		Where("name = ? AND stock_liters = ?", name, observed).
		Update("stock_liters", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
