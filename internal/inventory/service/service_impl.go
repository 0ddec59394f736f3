package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/jetrefuels/fuelpos/internal/clock"
	"github.com/jetrefuels/fuelpos/internal/inventory/domain"
	"github.com/jetrefuels/fuelpos/internal/money"
	pkgdb "github.com/jetrefuels/fuelpos/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Node  *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	node  *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("inventory.service"),
		clock: p.Clock,
		node:  p.Node,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, name string) (*domain.FuelGrade, error) {
	key := domain.NormalizeName(name)
	if key == "" {
		return nil, domain.ErrInvalidGradeName
	}
	grade, err := s.repo.FindByName(ctx, s.db, key)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, domain.ErrUnknownGrade
	}
	return grade, nil
}

func (s *Service) List(ctx context.Context) ([]domain.FuelGrade, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Create(ctx context.Context, req domain.CreateGradeRequest) (*domain.FuelGrade, error) {
	key := domain.NormalizeName(req.Name)
	if key == "" {
		return nil, domain.ErrInvalidGradeName
	}
	if err := validatePrice(req.UnitPrice); err != nil {
		return nil, err
	}
	if err := validateStock(req.StockLiters); err != nil {
		return nil, err
	}

	display := req.DisplayName
	if display == "" {
		display = req.Name
	}

	now := s.clock.Now()
	grade := &domain.FuelGrade{
		ID:          s.node.Generate(),
		Name:        key,
		DisplayName: display,
		UnitPrice:   req.UnitPrice,
		StockLiters: req.StockLiters,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, grade); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrGradeExists
		}
		return nil, err
	}

	s.log.Info("fuel grade created",
		zap.String("grade", grade.Name),
		zap.String("unit_price", grade.UnitPrice.StringFixed(money.CurrencyScale)),
	)
	return grade, nil
}

func (s *Service) SetPrice(ctx context.Context, name string, price decimal.Decimal) (*domain.FuelGrade, error) {
	key := domain.NormalizeName(name)
	if key == "" {
		return nil, domain.ErrInvalidGradeName
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	affected, err := s.repo.UpdatePrice(ctx, s.db, key, price)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrUnknownGrade
	}

	s.log.Info("fuel grade repriced",
		zap.String("grade", key),
		zap.String("unit_price", price.StringFixed(money.CurrencyScale)),
	)
	return s.repo.FindByName(ctx, s.db, key)
}

func (s *Service) SetStock(ctx context.Context, name string, stock decimal.Decimal) (*domain.FuelGrade, error) {
	key := domain.NormalizeName(name)
	if key == "" {
		return nil, domain.ErrInvalidGradeName
	}
	if err := validateStock(stock); err != nil {
		return nil, err
	}

	affected, err := s.repo.UpdateStock(ctx, s.db, key, stock)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrUnknownGrade
	}

	s.log.Info("fuel grade restocked",
		zap.String("grade", key),
		zap.String("stock_liters", stock.StringFixed(money.VolumeScale)),
	)
	return s.repo.FindByName(ctx, s.db, key)
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() || !price.Equal(price.Truncate(money.CurrencyScale)) {
		return money.ErrInvalidPrice
	}
	return nil
}

func validateStock(stock decimal.Decimal) error {
	if stock.IsNegative() || !stock.Equal(stock.Truncate(money.VolumeScale)) {
		return domain.ErrInvalidStock
	}
	return nil
}
