package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice marks a zero or negative unit price. A grade priced at
// zero is a configuration defect, not a runtime condition to absorb.
var ErrInvalidPrice = errors.New("invalid_price")

// VolumeScale is the number of fractional digits tracked for liters.
const VolumeScale = 2

// CurrencyScale is the number of fractional digits tracked for currency.
const CurrencyScale = 2

// LitersFor converts a charged amount into liters at unitPrice. The result
// is truncated, never rounded up, so the cost of the dispensed volume cannot
// exceed the amount paid.
func LitersFor(amount, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if unitPrice.Sign() <= 0 {
		return decimal.Zero, ErrInvalidPrice
	}
	return amount.DivRound(unitPrice, VolumeScale+8).Truncate(VolumeScale), nil
}

// AmountFor prices a volume of liters at unitPrice, truncated to the
// smallest currency unit. Re-deriving the amount from liters produced by
// LitersFor therefore never exceeds the original charge.
func AmountFor(liters, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if unitPrice.Sign() <= 0 {
		return decimal.Zero, ErrInvalidPrice
	}
	return liters.Mul(unitPrice).Truncate(CurrencyScale), nil
}
