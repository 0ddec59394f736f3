package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/jetrefuels/fuelpos/internal/clock"
	"github.com/jetrefuels/fuelpos/internal/dispense/domain"
	employeedomain "github.com/jetrefuels/fuelpos/internal/employee/domain"
	inventorydomain "github.com/jetrefuels/fuelpos/internal/inventory/domain"
	ledgerdomain "github.com/jetrefuels/fuelpos/internal/ledger/domain"
	"github.com/jetrefuels/fuelpos/internal/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Node      *snowflake.Node
	Grades    inventorydomain.Repository
	Ledger    ledgerdomain.Repository
	Employees employeedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	node      *snowflake.Node
	grades    inventorydomain.Repository
	ledger    ledgerdomain.Repository
	employees employeedomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("dispense.service"),
		clock:     p.Clock,
		node:      p.Node,
		grades:    p.Grades,
		ledger:    p.Ledger,
		employees: p.Employees,
	}
}

func (s *Service) Dispense(ctx context.Context, req domain.DispenseRequest) (*domain.Result, error) {
	if !req.Amount.IsPositive() || !req.Amount.Equal(req.Amount.Truncate(money.CurrencyScale)) {
		return nil, domain.ErrInvalidAmount
	}
	key := inventorydomain.NormalizeName(req.GradeName)
	if key == "" {
		return nil, inventorydomain.ErrUnknownGrade
	}

	// Cheap unlocked pre-check so hopeless requests fail before the
	// transaction. The locked re-read below is the authoritative one.
	grade, err := s.grades.FindByName(ctx, s.db, key)
	if err != nil {
		return nil, storageErr(err)
	}
	if grade == nil {
		return nil, inventorydomain.ErrUnknownGrade
	}
	liters, err := money.LitersFor(req.Amount, grade.UnitPrice)
	if err != nil {
		return nil, err
	}
	if liters.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if liters.GreaterThan(grade.StockLiters) {
		return nil, &domain.InsufficientStockError{
			Grade:           key,
			RequestedLiters: liters,
			AvailableLiters: grade.StockLiters,
		}
	}

	employee, err := s.employees.FindByID(ctx, s.db, req.EmployeeID)
	if err != nil {
		return nil, storageErr(err)
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: employee %d vanished mid-sale", domain.ErrInternalConsistency, req.EmployeeID)
	}

	// Once fuel is about to flow the commit must not be torn apart by a
	// caller timeout. The transaction runs detached from cancellation.
	commitCtx := context.WithoutCancel(ctx)

	var result *domain.Result
	err = s.db.WithContext(commitCtx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.grades.LockByName(commitCtx, tx, key)
		if err != nil {
			return err
		}
		if locked == nil {
			return inventorydomain.ErrUnknownGrade
		}

		// Price may have changed since the pre-check; the locked price is
		// the one the sale is charged at.
		liters, err := money.LitersFor(req.Amount, locked.UnitPrice)
		if err != nil {
			return err
		}
		if liters.IsZero() {
			return domain.ErrInvalidAmount
		}
		if liters.GreaterThan(locked.StockLiters) {
			return &domain.InsufficientStockError{
				Grade:           key,
				RequestedLiters: liters,
				AvailableLiters: locked.StockLiters,
			}
		}
		charged, err := money.AmountFor(liters, locked.UnitPrice)
		if err != nil {
			return err
		}

		swapped, err := s.grades.DecrementStock(commitCtx, tx, key, locked.StockLiters, locked.StockLiters.Sub(liters))
		if err != nil {
			return err
		}
		if !swapped {
			fresh, err := s.grades.FindByName(commitCtx, tx, key)
			if err != nil {
				return err
			}
			if fresh == nil {
				return fmt.Errorf("%w: grade %s vanished mid-sale", domain.ErrInternalConsistency, key)
			}
			return &domain.InsufficientStockError{
				Grade:           key,
				RequestedLiters: liters,
				AvailableLiters: fresh.StockLiters,
			}
		}

		record := &ledgerdomain.TransactionRecord{
			ID:         s.node.Generate(),
			EmployeeID: employee.ID,
			GradeName:  key,
			Amount:     charged,
			Liters:     liters,
			CreatedAt:  s.clock.Now().UTC(),
		}
		if err := s.ledger.Insert(commitCtx, tx, record); err != nil {
			return err
		}

		result = &domain.Result{
			TransactionID: record.ID,
			EmployeeID:    employee.ID,
			EmployeeName:  employee.Name,
			Grade:         key,
			GradeLabel:    locked.DisplayName,
			UnitPrice:     locked.UnitPrice,
			Amount:        charged,
			Liters:        liters,
			Timestamp:     record.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}

	s.log.Info("sale committed",
		zap.Int64("employee_id", result.EmployeeID),
		zap.String("grade", result.Grade),
		zap.String("amount", result.Amount.StringFixed(money.CurrencyScale)),
		zap.String("liters", result.Liters.StringFixed(money.VolumeScale)),
	)
	return result, nil
}

// storageErr wraps infrastructure failures while letting domain outcomes
// pass through unchanged.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		domain.ErrInvalidAmount,
		domain.ErrInsufficientStock,
		domain.ErrInternalConsistency,
		inventorydomain.ErrUnknownGrade,
		money.ErrInvalidPrice,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
