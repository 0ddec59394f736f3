package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Dispense runs one sale end to end: lock the grade's price, convert the
	// amount into liters, decrement stock and append the ledger record in a
	// single transaction. Either both writes land or neither does.
	Dispense(ctx context.Context, req DispenseRequest) (*Result, error)
}

var (
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInsufficientStock   = errors.New("insufficient_stock")
	ErrStorage             = errors.New("storage_failure")
	ErrInternalConsistency = errors.New("internal_consistency")
)

// InsufficientStockError carries the numbers an operator needs to relay to
// the customer. errors.Is(err, ErrInsufficientStock) matches it.
type InsufficientStockError struct {
	Grade           string
	RequestedLiters decimal.Decimal
	AvailableLiters decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %s L, available %s L",
		e.Grade, e.RequestedLiters.StringFixed(2), e.AvailableLiters.StringFixed(2))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
