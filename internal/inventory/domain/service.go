package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateGradeRequest struct {
	Name        string
	DisplayName string
	UnitPrice   decimal.Decimal
	StockLiters decimal.Decimal
}

type Service interface {
	Get(ctx context.Context, name string) (*FuelGrade, error)
	List(ctx context.Context) ([]FuelGrade, error)
	Create(ctx context.Context, req CreateGradeRequest) (*FuelGrade, error)
	SetPrice(ctx context.Context, name string, price decimal.Decimal) (*FuelGrade, error)
	SetStock(ctx context.Context, name string, stock decimal.Decimal) (*FuelGrade, error)
}

var (
	ErrUnknownGrade     = errors.New("unknown_grade")
	ErrInvalidGradeName = errors.New("invalid_grade_name")
	ErrInvalidStock     = errors.New("invalid_stock")
	ErrGradeExists      = errors.New("grade_exists")
)
